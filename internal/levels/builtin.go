package levels

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed builtin
var builtinFS embed.FS

// campaignManifest mirrors builtin/campaign.yaml.
type campaignManifest struct {
	Campaign []struct {
		ID    string `yaml:"id"`
		Title string `yaml:"title"`
		File  string `yaml:"file"`
	} `yaml:"campaign"`
}

// campaignIDs preserves the manifest's play order.
var campaignIDs []string

func init() {
	raw, err := builtinFS.ReadFile("builtin/campaign.yaml")
	if err != nil {
		panic(fmt.Sprintf("levels: read embedded campaign manifest: %v", err))
	}

	var m campaignManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("levels: parse campaign manifest: %v", err))
	}

	for _, e := range m.Campaign {
		grid, err := builtinFS.ReadFile("builtin/" + e.File)
		if err != nil {
			panic(fmt.Sprintf("levels: read embedded level %q: %v", e.ID, err))
		}
		Register(Source{ID: e.ID, Title: e.Title, Text: string(grid)})
		campaignIDs = append(campaignIDs, e.ID)
	}
}

// Campaign returns the built-in levels in play order.
func Campaign() []Source {
	out := make([]Source, 0, len(campaignIDs))
	for _, id := range campaignIDs {
		src, err := Get(id)
		if err != nil {
			// Campaign IDs are registered right above; Get cannot fail.
			panic(err)
		}
		out = append(out, src)
	}
	return out
}

// CampaignIndex returns the position of the ID in the campaign, or -1 for
// external levels.
func CampaignIndex(id string) int {
	for i, cid := range campaignIDs {
		if cid == id {
			return i
		}
	}
	return -1
}
