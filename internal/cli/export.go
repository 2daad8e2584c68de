package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/velvetash/somnia/internal/config"
	"github.com/velvetash/somnia/internal/journal"
)

// runExport dumps the stored journal to out as indented JSON, reading
// through the same store the server uses.
func runExport(ctx context.Context, out io.Writer) error {
	conf, err := config.Load(configPath)
	if err != nil {
		return err
	}

	kv, err := openStorage(conf)
	if err != nil {
		return err
	}

	entries, err := journal.NewStore(kv).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load journal: %w", err)
	}

	serialized, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize journal: %w", err)
	}

	if _, err := fmt.Fprintln(out, string(serialized)); err != nil {
		return err
	}
	return nil
}
