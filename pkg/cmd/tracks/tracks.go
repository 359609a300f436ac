package tracks

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/pkg/cmd/cmdutil"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/track"
)

var format string

func NewTracksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "show the track catalog",
	}
	cmd.AddCommand(newListCmd(), newShowCmd())
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "lists all known tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(format); err != nil {
				return err
			}
			return listTracks(cmd.OutOrStdout(), track.Default(), format)
		},
	}
	cmdutil.AddFormatFlag(cmd, &format)
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "shows sectors and corners of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdutil.CheckFormat(format); err != nil {
				return err
			}
			t, ok := track.Default().LookupByName(args[0])
			if !ok {
				return fmt.Errorf("unknown track %q", args[0])
			}
			return showTrack(cmd.OutOrStdout(), t, format)
		},
	}
	cmdutil.AddFormatFlag(cmd, &format)
	return cmd
}

func listTracks(w io.Writer, c *track.Catalog, format string) error {
	if format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, c.All())
	}
	t := cmdutil.NewTable(w)
	t.AppendHeader(table.Row{"Track", "Length (km)", "Turns", "Lap record (s)"})
	for _, item := range c.All() {
		t.AppendRow(table.Row{
			item.Name, cmdutil.F(item.Length, 3), item.Turns, cmdutil.F(item.LapRecord, 3),
		})
	}
	t.Render()
	return nil
}

func showTrack(w io.Writer, item *model.Track, format string) error {
	if format == cmdutil.FormatJSON {
		return cmdutil.WriteJSON(w, item)
	}
	fmt.Fprintf(w, "%s: %.3f km, %d turns, lap record %.3f s\n",
		item.Name, item.Length, item.Turns, item.LapRecord)

	st := cmdutil.NewTable(w)
	st.AppendHeader(table.Row{"Sector", "Length (km)", "Corners", "Expected (s)"})
	for _, s := range item.Sectors {
		st.AppendRow(table.Row{s.Number, cmdutil.F(s.Length, 3), fmt.Sprint(s.Corners),
			cmdutil.F(s.ExpectedTime, 1)})
	}
	st.Render()

	ct := cmdutil.NewTable(w)
	ct.AppendHeader(table.Row{"#", "Corner", "Type", "Entry", "Exit", "Gear", "Braking", "G"})
	for _, c := range item.Corners {
		ct.AppendRow(table.Row{
			c.Number, c.Name, c.Type, c.EntrySpeed, c.ExitSpeed, c.Gear, c.BrakingZone,
			cmdutil.F(c.GForceExpected, 1),
		})
	}
	ct.Render()
	return nil
}
