package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/voevent"
	"github.com/tsawler/voevent/format"
)

var errInvalidPackets = errors.New("one or more packets are invalid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check packets against the VOEvent v2.0 schema",
		Long: `Validates each file against the VOEvent v2.0 schema and prints one line
per file. The command fails if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if !a.report(cmd.OutOrStdout(), path) {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidPackets, failed, len(args))
			}
			return nil
		},
	}
}

// report validates one file, prints the outcome to w and reports whether
// the file is a valid packet.
func (a *app) report(w io.Writer, path string) bool {
	if err := a.checkFile(path); err != nil {
		fmt.Fprintf(w, "%s: invalid: %v\n", path, err)
		return false
	}
	fmt.Fprintf(w, "%s: valid\n", path)
	return true
}

// checkFile returns nil if path holds a schema-valid VOEvent v2.0 packet.
func (a *app) checkFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := format.DetectFromReader(f)
	if err != nil {
		return fmt.Errorf("not well-formed XML: %w", err)
	}
	a.logger.Debug("detected packet version", zap.String("file", path), zap.Stringer("version", v))
	if v != format.V2_0 {
		return fmt.Errorf("%w: %s", voevent.ErrUnsupportedVersion, v)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	d, err := voevent.Load(f)
	if err != nil {
		return err
	}
	if err := voevent.AssertValid(d); err != nil {
		var verr *voevent.ValidationError
		if errors.As(err, &verr) {
			return errors.New(verr.Reason())
		}
		return err
	}
	a.logger.Debug("packet valid", zap.String("file", path), zap.String("ivorn", d.IVORN()))
	return nil
}
