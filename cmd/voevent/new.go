package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/voevent"
	"github.com/tsawler/voevent/definitions"
	"github.com/tsawler/voevent/model"
)

type newOptions struct {
	stream      string
	id          string
	role        string
	ra, dec     float64
	errRadius   float64
	system      string
	observatory string
	obsTime     string
	params      []string
	description string
	importance  float64
	cites       []string
	out         string
	compact     bool
}

func newNewCmd(a *app) *cobra.Command {
	var o newOptions

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new packet",
		Long: `Builds a packet from the configured author details and the given flags,
validates it and writes it to standard output or --out.

Example:
  voevent new --stream voevent.example.org/alerts --ra 10.5 --dec -20 \
      --param mag=17.2 --param filter=R`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.buildPacket(cmd, o)
			if err != nil {
				return err
			}
			if err := voevent.AssertValid(d); err != nil {
				return err
			}

			opts := voevent.DefaultWriteOptions()
			opts.PrettyPrint = !o.compact
			if o.out == "" {
				return voevent.Dump(d, cmd.OutOrStdout(), opts)
			}
			data, err := voevent.Serialize(d, opts)
			if err != nil {
				return err
			}
			if err := os.WriteFile(o.out, data, 0o644); err != nil {
				return err
			}
			a.logger.Info("packet written", zap.String("file", o.out), zap.String("ivorn", d.IVORN()))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.stream, "stream", "", "IVORN stream without scheme, e.g. example.org/alerts (default from config)")
	f.StringVar(&o.id, "id", "", "stream-local packet id (default a random UUID)")
	f.StringVar(&o.role, "role", "", "packet role: observation, prediction, utility or test (default from config)")
	f.Float64Var(&o.ra, "ra", 0, "right ascension in degrees")
	f.Float64Var(&o.dec, "dec", 0, "declination in degrees")
	f.Float64Var(&o.errRadius, "error", 0, "position error radius in degrees")
	f.StringVar(&o.system, "system", definitions.SkyUTCFK5Geo, "coordinate system id")
	f.StringVar(&o.observatory, "observatory", definitions.ObservatoryGeoSurface, "observatory location id")
	f.StringVar(&o.obsTime, "time", "", "observation time, ISO 8601 (default now)")
	f.StringArrayVar(&o.params, "param", nil, "top-level parameter as name=value (repeatable)")
	f.StringVar(&o.description, "description", "", "How description")
	f.Float64Var(&o.importance, "importance", 0, "Why importance between 0 and 1")
	f.StringArrayVar(&o.cites, "cite", nil, "IVORN of a packet this one follows up (repeatable)")
	f.StringVarP(&o.out, "out", "o", "", "write the packet to this file")
	f.BoolVar(&o.compact, "compact", false, "do not indent the output")
	return cmd
}

func (a *app) buildPacket(cmd *cobra.Command, o newOptions) (*voevent.Document, error) {
	stream := firstNonEmpty(o.stream, a.cfg.Stream)
	if stream == "" {
		return nil, errors.New("no stream given: use --stream or set stream in the config file")
	}
	id := o.id
	if id == "" {
		id = uuid.NewString()
	}
	role := firstNonEmpty(o.role, a.cfg.Role, voevent.RoleTest)
	if !definitions.IsRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	d := voevent.New(stream, id, role)
	voevent.SetWho(d, time.Now(), a.cfg.Author.IVORN)
	voevent.SetAuthor(d, a.cfg.Author.author())
	a.logger.Debug("creating packet", zap.String("ivorn", d.IVORN()))

	what := d.Section("What")
	for _, kv := range o.params {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", kv)
		}
		p, err := voevent.NewParam(name, flagValue(raw))
		if err != nil {
			return nil, err
		}
		what.Append(p)
	}

	flags := cmd.Flags()
	if flags.Changed("ra") || flags.Changed("dec") {
		obsTime := time.Now()
		if o.obsTime != "" {
			t, err := time.Parse(time.RFC3339Nano, o.obsTime)
			if err != nil {
				return nil, fmt.Errorf("invalid --time: %w", err)
			}
			obsTime = t
		}
		pos := model.Position2D{
			RA:     o.ra,
			Dec:    o.dec,
			Err:    o.errRadius,
			Units:  definitions.UnitDegrees,
			System: o.system,
		}
		if err := voevent.AddWhereWhen(d, pos, obsTime, o.observatory); err != nil {
			return nil, err
		}
	}

	if o.description != "" {
		voevent.AddHow(d, voevent.Descriptions(o.description))
	}
	if flags.Changed("importance") {
		voevent.AddWhy(d, voevent.Importance(o.importance))
	}
	for _, ivorn := range o.cites {
		voevent.AddCitations(d, voevent.NewCitation(ivorn, definitions.CiteFollowup))
	}
	return d, nil
}

// flagValue converts a command-line parameter value to the most specific
// type NewParam understands.
func flagValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
