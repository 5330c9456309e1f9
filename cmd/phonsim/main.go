// Package main provides the CLI entrypoint for phonsim.
//
// phonsim compares transcriptions with a phonetically weighted edit distance:
//   - phoneme: feature distance between two phonemes
//   - distance: edit distance and similarity of two transcriptions
//   - batch: scores a file of pairs in parallel
//   - rank: ranks lexicon entries against a query word
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"phon-similarity/feature"
	"phon-similarity/internal/cache"
	"phon-similarity/internal/config"
	"phon-similarity/internal/ingest"
	"phon-similarity/internal/match"
	"phon-similarity/internal/score"
)

type globalFlags struct {
	configPath string
	tablePath  string
	keyColumn  int
}

func main() {
	logger := log.New(os.Stderr, "phonsim: ", 0)
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "phonsim",
		Short:         "Phonetically weighted transcription similarity",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVarP(&flags.tablePath, "table", "t", "", "feature table CSV (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flags.keyColumn, "key-column", -1, "0-based key column of the feature table (overrides config)")

	rootCmd.AddCommand(createPhonemeCmd(flags))
	rootCmd.AddCommand(createDistanceCmd(flags))
	rootCmd.AddCommand(createBatchCmd(flags, logger))
	rootCmd.AddCommand(createRankCmd(flags, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Print(err)
		stop()
		os.Exit(1)
	}
}

func createPhonemeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "phoneme A B",
		Short: "Feature distance between two phonemes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			tbl, err := loadTable(cfg)
			if err != nil {
				return err
			}

			d, err := match.PhonemeDistance(args[0], args[1], tbl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(d, 'f', -1, 64))

			return nil
		},
	}
}

func createDistanceCmd(flags *globalFlags) *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "distance S T",
		Short: "Edit distance and similarity of two transcriptions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			mode := cfg.Mode()
			if modeName != "" {
				if mode, err = match.ParseMode(modeName); err != nil {
					return err
				}
			}

			var tbl *feature.Table
			if mode == match.ModePhonetic {
				if tbl, err = loadTable(cfg); err != nil {
					return err
				}
			}

			res, err := score.New(tbl).Score(cmd.Context(), score.Pair{
				ID:     "cli",
				Source: args[0],
				Target: args[1],
				Mode:   mode,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "distance\t%s\nsimilarity\t%s\n",
				strconv.FormatFloat(res.Distance, 'f', -1, 64),
				strconv.FormatFloat(res.Similarity, 'f', -1, 64))

			return nil
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "phonetic or orthographic (overrides config)")

	return cmd
}

func createBatchCmd(flags *globalFlags, logger *log.Logger) *cobra.Command {
	var (
		modeName string
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Score tab-separated id/source/target pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			mode := cfg.Mode()
			if modeName != "" {
				if mode, err = match.ParseMode(modeName); err != nil {
					return err
				}
			}

			if workers > 0 {
				cfg.Scoring.Workers = workers
			}

			var tbl *feature.Table
			if mode == match.ModePhonetic {
				if tbl, err = loadTable(cfg); err != nil {
					return err
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open pairs file: %w", err)
			}
			defer f.Close()

			pairs, err := score.ReadPairs(f, mode)
			if err != nil {
				return fmt.Errorf("failed to read pairs file %s: %w", args[0], err)
			}

			resultCache, closeCache, err := openCache(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeCache()

			scorer := score.New(tbl,
				score.WithWorkers(cfg.Scoring.Workers),
				score.WithCache(resultCache),
				score.WithLogger(logger),
			)

			results, diags, err := scorer.ScoreAll(cmd.Context(), pairs)
			if err != nil {
				return err
			}

			if err := score.WriteResults(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			for _, d := range diags.All() {
				logger.Print(d.String())
			}

			if diags.HasErrors() {
				return fmt.Errorf("%d of %d pairs failed", len(diags.Errors), len(pairs))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "phonetic or orthographic (overrides config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent workers (overrides config)")

	return cmd
}

func createRankCmd(flags *globalFlags, logger *log.Logger) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "rank WORD TRANSCRIPTION LEXICON",
		Short: "Rank lexicon entries by similarity to a word",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			tbl, err := loadTable(cfg)
			if err != nil {
				return err
			}

			f, err := os.Open(args[2])
			if err != nil {
				return fmt.Errorf("failed to open lexicon: %w", err)
			}
			defer f.Close()

			lexicon, err := score.ReadLexicon(f)
			if err != nil {
				return fmt.Errorf("failed to read lexicon %s: %w", args[2], err)
			}

			candidates, diags := match.RankCandidates(match.Entry{Word: args[0], Transcription: args[1]}, lexicon, tbl)

			for _, d := range diags.All() {
				logger.Print(d.String())
			}

			out := cmd.OutOrStdout()
			for _, c := range candidates.Top(top) {
				fmt.Fprintf(out, "%s\t%s\t%.3f\t%.3f\t%.3f\n",
					c.Entry.Word, c.Entry.Transcription, c.PhoneticScore, c.OrthographicScore, c.CombinedScore)
			}

			if candidates.IsAmbiguous(match.DefaultAmbiguityThreshold) {
				logger.Print("top candidates are within ", match.DefaultAmbiguityThreshold, " of each other")
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 10, "number of candidates to print")

	return cmd
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg := config.Default()

	if flags.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(flags.configPath); err != nil {
			return nil, err
		}
	}

	if flags.tablePath != "" {
		cfg.Table.Path = flags.tablePath
	}

	if flags.keyColumn >= 0 {
		col := flags.keyColumn
		cfg.Table.KeyColumn = &col
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadTable(cfg *config.Config) (*feature.Table, error) {
	if cfg.Table.Path == "" {
		return nil, fmt.Errorf("no feature table given: use --table or table.path in the config")
	}

	return ingest.LoadFile(cfg.Table.Path, cfg.IngestOptions()...)
}

func openCache(ctx context.Context, cfg *config.Config, logger *log.Logger) (cache.Cache, func(), error) {
	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemory(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
		DB:   cfg.Cache.RedisDB,
	})
	rc := cache.NewRedis(client, cfg.Cache.Prefix, cfg.Cache.TTL)

	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
	}

	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Printf("closing redis: %v", err)
		}
	}, nil
}
