package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/export"
	"github.com/df07/go-octree-raytracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame. The image goes to stdout unless --out is given and
// the elapsed time in milliseconds is reported on stderr.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	start := time.Now()

	s, camera, err := buildScene(cfg)
	if err != nil {
		return err
	}

	r := newRenderer(cfg)
	defer r.Close()

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	surface, err := r.Render(renderCtx, s, camera)
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	if cfg.Output == "" {
		err = export.WritePPM(stdout(ctx), surface)
	} else {
		err = export.SaveFile(cfg.Output, surface)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr(ctx), "elapsed: %d\n", time.Since(start).Milliseconds())
	return nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Tasks", "Rows", "% of frame", "Rays", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Tasks),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Rays),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%d", stats.Rays), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
