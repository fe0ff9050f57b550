package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/database/models"
	"github.com/xlovstudio/rui/rui/database/repositories"
	"github.com/xlovstudio/rui/rui/economy/catalog"
)

var seedFile string

// cardFile is the layout of a seed file.
type cardFile struct {
	Cards []models.Card `yaml:"cards"`
}

var seedCMD = &cobra.Command{
	Use:   "seed",
	Short: "import card definitions from a YAML file into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cards, rejected, err := readCardFile(seedFile)
		if err != nil {
			return err
		}
		for id, reason := range rejected {
			slog.Warn("Skipping invalid card",
				slog.String("type", "db"),
				slog.String("card_id", id),
				slog.String("reason", reason))
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, _, err := rui.OpenStore(ctx, *cfg)
		if err != nil {
			return err
		}
		defer closeStore(ctx, store)

		added, err := seed(ctx, repositories.NewCardRepository(store), cards)
		if err != nil {
			return err
		}
		slog.Info("Catalog seeded",
			slog.String("type", "db"),
			slog.Int("added", added),
			slog.Int("existing", len(cards)-added),
			slog.Int("invalid", len(rejected)))
		return nil
	},
}

func init() {
	seedCMD.Flags().StringVar(&seedFile, "file", "cards.yaml", "YAML file with card definitions")
	rootCmd.AddCommand(seedCMD)
}

// readCardFile parses path and splits valid definitions from rejected ids.
func readCardFile(path string) ([]models.Card, map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseCards(data)
}

func parseCards(data []byte) ([]models.Card, map[string]string, error) {
	var file cardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse cards: %w", err)
	}

	valid := make([]models.Card, 0, len(file.Cards))
	rejected := make(map[string]string)
	for i, c := range file.Cards {
		c.ID = catalog.NormalizeID(c.ID)
		if c.Type == "" {
			c.Type = models.CardTypeRegular
		}
		if t, ok := models.ParseCardType(string(c.Type)); ok {
			c.Type = t
		}
		if r, ok := models.ParseRarity(string(c.Rarity)); ok {
			c.Rarity = r
		}
		if err := catalog.ValidateDefinition(c); err != nil {
			id := c.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i+1)
			}
			rejected[id] = strings.TrimSpace(err.Error())
			continue
		}
		valid = append(valid, c)
	}
	return valid, rejected, nil
}

func seed(ctx context.Context, cards repositories.CardRepository, batch []models.Card) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	added, err := cards.BulkCreate(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to store cards: %w", err)
	}
	return added, nil
}
