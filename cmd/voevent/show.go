package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/voevent"
	"github.com/tsawler/voevent/model"
)

// packetSummary is the machine-readable view printed by show.
type packetSummary struct {
	IVORN       string                       `json:"ivorn" yaml:"ivorn"`
	Role        string                       `json:"role" yaml:"role"`
	Version     string                       `json:"version" yaml:"version"`
	AuthorIVORN string                       `json:"authorIvorn,omitempty" yaml:"authorIvorn,omitempty"`
	Date        string                       `json:"date,omitempty" yaml:"date,omitempty"`
	Position    *positionSummary             `json:"position,omitempty" yaml:"position,omitempty"`
	Time        string                       `json:"time,omitempty" yaml:"time,omitempty"`
	Params      map[string]string            `json:"params,omitempty" yaml:"params,omitempty"`
	Groups      map[string]map[string]string `json:"groups,omitempty" yaml:"groups,omitempty"`
}

type positionSummary struct {
	RA     float64 `json:"ra" yaml:"ra"`
	Dec    float64 `json:"dec" yaml:"dec"`
	Error  float64 `json:"error" yaml:"error"`
	Units  string  `json:"units" yaml:"units"`
	System string  `json:"system" yaml:"system"`
}

func newShowCmd(a *app) *cobra.Command {
	var (
		output string
		index  int
	)

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Summarise a packet",
		Long: `Prints the identity, position, observation time and parameters of a
packet. Output is plain text unless --output json or --output yaml is given.
Packets with several observation records are summarised from the first one
unless --index picks another.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := voevent.LoadFile(args[0])
			if err != nil {
				return err
			}
			s := a.summarize(d, index)

			out := cmd.OutOrStdout()
			switch output {
			case "text":
				writeSummaryText(out, s)
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(s); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	cmd.Flags().IntVar(&index, "index", 0, "ObsDataLocation record to read position and time from")
	return cmd
}

func (a *app) summarize(d *voevent.Document, index int) packetSummary {
	s := packetSummary{
		IVORN:   d.IVORN(),
		Role:    d.Role(),
		Version: d.Version(),
	}
	if who := d.Section("Who"); who != nil {
		if e := who.Child("AuthorIVORN"); e != nil {
			s.AuthorIVORN = strings.TrimSpace(e.Text())
		}
		if e := who.Child("Date"); e != nil {
			s.Date = strings.TrimSpace(e.Text())
		}
	}

	if pos, err := voevent.EventPosition(d, index); err == nil {
		s.Position = &positionSummary{RA: pos.RA, Dec: pos.Dec, Error: pos.Err, Units: pos.Units, System: pos.System}
	} else {
		a.logger.Debug("no sky position", zap.Error(err))
	}

	switch t, ok, err := voevent.EventTimeUTC(d, index); {
	case err != nil:
		level := zap.WarnLevel
		if errors.Is(err, voevent.ErrTimescaleNotImplemented) {
			level = zap.DebugLevel
		}
		a.logger.Log(level, "observation time unavailable", zap.Error(err))
	case ok:
		s.Time = t.Format(time.RFC3339Nano)
	}

	s.Params = firstValues(voevent.ToplevelParams(d))
	for _, g := range voevent.GroupedParams(d).Entries() {
		if s.Groups == nil {
			s.Groups = make(map[string]map[string]string)
		}
		name := g.Key.String()
		if _, seen := s.Groups[name]; !seen {
			s.Groups[name] = firstValues(g.Value)
		}
	}
	return s
}

// firstValues maps each param name to the value of its first occurrence.
func firstValues(params *model.Multimap[model.Attrs]) map[string]string {
	if params.Size() == 0 {
		return nil
	}
	out := make(map[string]string, params.Len())
	for _, e := range params.Entries() {
		if _, seen := out[e.Key.String()]; !seen {
			out[e.Key.String()] = e.Value.Get("value")
		}
	}
	return out
}

func writeSummaryText(w io.Writer, s packetSummary) {
	fmt.Fprintf(w, "IVORN:    %s\n", s.IVORN)
	fmt.Fprintf(w, "Role:     %s\n", s.Role)
	fmt.Fprintf(w, "Version:  %s\n", s.Version)
	if s.AuthorIVORN != "" {
		fmt.Fprintf(w, "Author:   %s\n", s.AuthorIVORN)
	}
	if s.Date != "" {
		fmt.Fprintf(w, "Date:     %s\n", s.Date)
	}
	if p := s.Position; p != nil {
		fmt.Fprintf(w, "Position: RA %g Dec %g (error %g %s, %s)\n", p.RA, p.Dec, p.Error, p.Units, p.System)
	}
	if s.Time != "" {
		fmt.Fprintf(w, "Time:     %s\n", s.Time)
	}
	writeParams(w, "Params", s.Params)
	groups := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	for _, name := range groups {
		writeParams(w, "Group "+name, s.Groups[name])
	}
}

func writeParams(w io.Writer, title string, params map[string]string) {
	if len(params) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %s\n", name, params[name])
	}
}
