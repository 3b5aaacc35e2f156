// Package cli holds the interactive `init` wizard that writes a
// starter config file.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"recipeclip/internal/config"
)

func RunConfigWizard() error {
	def := config.Default()

	path := "config.json"
	addr := def.Addr
	dataFile := def.DataFile
	model := def.OpenAIModel
	timeout := strconv.Itoa(def.TimeoutSeconds)
	dynamicHosts := strings.Join(def.DynamicHosts, ", ")
	headless := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Config file path").
				Value(&path),
			huh.NewInput().
				Title("Listen address").
				Value(&addr),
			huh.NewInput().
				Title("Recipe data file").
				Value(&dataFile),
			huh.NewInput().
				Title("Model").
				Description("Any model behind an OpenAI-compatible endpoint.").
				Value(&model),
			huh.NewInput().
				Title("Fetch timeout (seconds)").
				Validate(validateInt).
				Value(&timeout),
			huh.NewInput().
				Title("Browser-rendered hosts").
				Description("Comma separated; these are fetched through headless Chromium.").
				Value(&dynamicHosts),
			huh.NewConfirm().
				Title("Run the browser headless?").
				Value(&headless),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	cfg := def
	cfg.Addr = strings.TrimSpace(addr)
	cfg.DataFile = strings.TrimSpace(dataFile)
	cfg.OpenAIModel = strings.TrimSpace(model)
	cfg.Headless = &headless
	cfg.TimeoutSeconds, _ = strconv.Atoi(strings.TrimSpace(timeout))
	cfg.DynamicHosts = splitHosts(dynamicHosts)

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\nSet OPENAI_API_KEY in the environment before starting the server.\n", path)
	return nil
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}

func splitHosts(raw string) []string {
	var hosts []string
	for _, part := range strings.Split(raw, ",") {
		if host := strings.TrimSpace(part); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}
