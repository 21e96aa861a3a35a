package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"snipelabel/internal/config"
	"snipelabel/internal/history"
	"snipelabel/internal/pipeline"
	"snipelabel/internal/services"
	"snipelabel/internal/snipeit"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var itemTypeFlag string
	var itemNumFlag string
	var inputFlag string
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a label document for one inventory item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			req, err := resolveRequest(cmd, cfg, itemTypeFlag, itemNumFlag, inputFlag, outputFlag)
			if err != nil {
				return err
			}

			result, err := p.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s for %s %s\n", result.OutputPath, req.ItemType, req.ItemID)
			fmt.Fprintf(out, "QR target: %s\n", result.TargetURL)
			if len(result.MissingTags) > 0 {
				fmt.Fprintf(out, "Warning: %d template tag(s) had no record value: %s\n",
					len(result.MissingTags), strings.Join(result.MissingTags, ", "))
			}

			recordHistory(cmd.Context(), ctx, cfg, req, result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemTypeFlag, "type", "t", "", "Item type (assets, accessories, consumables, components)")
	cmd.Flags().StringVarP(&itemNumFlag, "item-num", "n", "", "Numeric item ID in Snipe-IT")
	cmd.Flags().StringVarP(&inputFlag, "input-file", "i", "", "Template document path")
	cmd.Flags().StringVarP(&outputFlag, "output-file", "o", "", "Destination path for the generated label")
	return cmd
}

// resolveRequest merges flags, config defaults, and (on a terminal) an
// interactive prompt into a complete request.
func resolveRequest(cmd *cobra.Command, cfg *config.Config, itemTypeFlag, itemNumFlag, inputFlag, outputFlag string) (pipeline.LabelRequest, error) {
	typeName := strings.TrimSpace(itemTypeFlag)
	if typeName == "" {
		typeName = cfg.Labels.ItemType
	}
	itemType, err := snipeit.ParseItemType(typeName)
	if err != nil {
		return pipeline.LabelRequest{}, services.Wrap(services.ErrValidation, "generate", "item type", err.Error(), nil)
	}

	itemNum := strings.TrimSpace(itemNumFlag)
	if itemNum == "" {
		itemNum, err = promptItemNumber(cmd, itemType)
		if err != nil {
			return pipeline.LabelRequest{}, err
		}
	}

	template := strings.TrimSpace(inputFlag)
	if template == "" {
		template = cfg.Paths.TemplatePath
	}
	template, err = config.ExpandPath(template)
	if err != nil {
		return pipeline.LabelRequest{}, err
	}

	output := strings.TrimSpace(outputFlag)
	if output == "" {
		output = cfg.Paths.OutputPath
	}
	output, err = config.ExpandPath(output)
	if err != nil {
		return pipeline.LabelRequest{}, err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return pipeline.LabelRequest{}, fmt.Errorf("create output directory: %w", err)
	}

	return pipeline.LabelRequest{
		ItemType:     itemType,
		ItemID:       itemNum,
		TemplatePath: template,
		OutputPath:   output,
	}, nil
}

func promptItemNumber(cmd *cobra.Command, itemType snipeit.ItemType) (string, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", services.Wrap(services.ErrValidation, "generate", "item id",
			"required when not running interactively (pass --item-num)", nil)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Item number for %s: ", itemType)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("read item number: no input")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", services.Wrap(services.ErrValidation, "generate", "item id", "must not be empty", nil)
	}
	return line, nil
}

// recordHistory persists the run when the history store is enabled. Failures
// are reported but never fail a run whose label already exists on disk.
func recordHistory(runCtx context.Context, ctx *commandContext, cfg *config.Config, req pipeline.LabelRequest, result *pipeline.Result) {
	if !cfg.History.Enabled {
		return
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return
	}

	store, err := history.Open(cfg.Paths.DataDir)
	if err != nil {
		logger.Warn("history store unavailable", "error", err)
		return
	}
	defer store.Close()

	run := history.Run{
		ItemType:    string(req.ItemType),
		ItemID:      req.ItemID,
		OutputPath:  result.OutputPath,
		TagCount:    len(result.Tags),
		MissingTags: len(result.MissingTags),
	}
	if _, err := store.Record(runCtx, run); err != nil {
		logger.Warn("failed to record run history", "error", err)
	}
}
