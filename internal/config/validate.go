package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validItemTypes = map[string]struct{}{
	"assets":      {},
	"accessories": {},
	"consumables": {},
	"components":  {},
}

var validQRTargets = map[string]struct{}{
	"auto": {},
	"page": {},
	"api":  {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSnipeIT(); err != nil {
		return err
	}
	if err := c.validateLabels(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSnipeIT() error {
	if c.SnipeIT.URL == "" {
		return fmt.Errorf("snipeit.url is required. Set SNIPEIT_URL env var or edit %s (create with 'snipelabel config init')", configHint())
	}
	parsed, err := url.Parse(c.SnipeIT.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("snipeit.url %q must be an absolute URL (e.g. https://snipe.company.com)", c.SnipeIT.URL)
	}
	if c.SnipeIT.APIKey == "" {
		return fmt.Errorf("snipeit.api_key is required. Set SNIPEIT_API_KEY env var or edit %s (create with 'snipelabel config init')", configHint())
	}
	return nil
}

func (c *Config) validateLabels() error {
	if _, ok := validItemTypes[c.Labels.ItemType]; !ok {
		return fmt.Errorf("labels.item_type %q must be one of: %s", c.Labels.ItemType, strings.Join(ItemTypeNames(), ", "))
	}
	if _, ok := validQRTargets[c.Labels.QRTarget]; !ok {
		return fmt.Errorf("labels.qr_target %q must be one of: auto, page, api", c.Labels.QRTarget)
	}
	return nil
}

// ItemTypeNames returns the operator-facing item type keywords in a stable
// order.
func ItemTypeNames() []string {
	return []string{"assets", "accessories", "consumables", "components"}
}

func configHint() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return "~/.config/snipelabel/config.toml"
	}
	return path
}
