package cmd

import (
	"github.com/df07/go-octree-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the builtin scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(stdout(ctx))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, builder := range scene.Builders() {
		table.Append([]string{builder.Name(), builder.Description()})
	}
	table.Render()
	return nil
}
