package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"bitpanda_watcher/internal/client"
	"bitpanda_watcher/internal/config"
	domain "bitpanda_watcher/internal/domain/entity"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warning   = lipgloss.AdaptiveColor{Light: "#D9534F", Dark: "#FF6B6B"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard. Each entered API key is
// checked against the live Bitpanda API before the wizard moves on, so a typo
// is caught here instead of at service startup.
func RunTUI(logger *zap.Logger) error {
	var (
		apiKey      string
		currency    string
		categories  []string
		intervalStr string
		confirm     bool
	)

	// defaults
	currency = domain.DefaultCurrency
	intervalStr = "5"
	for _, cat := range domain.AllCategories() {
		categories = append(categories, string(cat))
	}

	// step 1: credential
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("BITPANDA WATCHER SETUP"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Connect your Bitpanda account.\n"))

	fmt.Println(stepStyle.Render("STEP 1: API KEY"))
	for {
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Bitpanda API Key").
					Description("Created under bitpanda.com > API. Needs wallet read scope.").
					Value(&apiKey).
					EchoMode(huh.EchoModePassword).
					Validate(func(s string) error {
						if s == "" {
							return fmt.Errorf("API key cannot be empty")
						}
						return nil
					}),
			),
		).Run()
		if err != nil {
			return err
		}

		if err := validateKey(apiKey, logger); err != nil {
			if errors.Is(err, domain.ErrInvalidAPIKey) {
				fmt.Println(lipgloss.NewStyle().Foreground(warning).Render("Bitpanda rejected this API key. Please try again."))
			} else {
				fmt.Println(lipgloss.NewStyle().Foreground(warning).Render(fmt.Sprintf("Could not verify the API key: %v", err)))
			}
			apiKey = ""
			continue
		}
		fmt.Println(lipgloss.NewStyle().Foreground(special).Render("API key verified."))
		break
	}

	// step 2: display currency
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("BITPANDA WATCHER SETUP"))
	fmt.Println(stepStyle.Render("STEP 2: DISPLAY CURRENCY"))
	currencyOptions := make([]huh.Option[string], 0, len(domain.SupportedCurrencies))
	for _, code := range domain.SupportedCurrencies {
		currencyOptions = append(currencyOptions, huh.NewOption(code, code))
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency for converted values").
				Options(currencyOptions...).
				Value(&currency),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 3: categories
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("BITPANDA WATCHER SETUP"))
	fmt.Println(stepStyle.Render("STEP 3: WALLET CATEGORIES"))
	categoryOptions := make([]huh.Option[string], 0, len(domain.AllCategories()))
	for _, cat := range domain.AllCategories() {
		categoryOptions = append(categoryOptions, huh.NewOption(string(cat), string(cat)).Selected(true))
	}
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Categories to watch").
				Options(categoryOptions...).
				Value(&categories).
				Validate(func(selected []string) error {
					if len(selected) == 0 {
						return fmt.Errorf("select at least one category")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// step 4: polling interval
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("BITPANDA WATCHER SETUP"))
	fmt.Println(stepStyle.Render("STEP 4: TIMING"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Poll Interval (minutes)").
				Description("How often wallet balances are refreshed (e.g. 5)").
				Value(&intervalStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive whole number of minutes")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("BITPANDA WATCHER SETUP"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	summary := fmt.Sprintf(
		"Currency: %s\nCategories: %d selected\nInterval: %s minutes\nAPI key: verified\n",
		currency, len(categories), intervalStr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	interval, _ := strconv.Atoi(intervalStr)
	cfg := config.Config{
		Bitpanda: config.BitpandaConfig{APIKey: apiKey},
		Poller: config.PollerConfig{
			IntervalMinutes: interval,
			Currency:        currency,
			Categories:      categories,
		},
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.gen.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", filename)))
	return nil
}

// validateKey probes the authenticated API with the candidate key.
func validateKey(apiKey string, logger *zap.Logger) error {
	probe := client.NewBitpandaClient(config.BitpandaConfig{
		BaseURL:              "https://api.bitpanda.com/v1",
		APIKey:               apiKey,
		RequestTimeoutMillis: 10000,
		RateLimit:            5,
		BurstLimit:           10,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return probe.ValidateAPIKey(ctx)
}
