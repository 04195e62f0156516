package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

// VersionsCmd implements the 'versions' command.
type VersionsCmd struct {
	Set string `help:"Only list this content set"`
}

// setVersions is one content set in the JSON listing.
type setVersions struct {
	ContentSet string               `json:"contentSet"`
	Versions   []versioning.Version `json:"versions"`
}

func (v *VersionsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}

	var listing []setVersions
	for _, set := range cfg.Docs {
		if v.Set != "" && set.ID != v.Set {
			continue
		}
		versions, err := versioning.Resolve(cfg.Root(), cfg.Site.BaseURL, set)
		if err != nil {
			return err
		}
		listing = append(listing, setVersions{ContentSet: set.ID, Versions: versions})
	}
	if v.Set != "" && len(listing) == 0 {
		return foundationerrors.ValidationError("unknown content set").WithContext("set", v.Set).Build()
	}

	if root.Format == "json" {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SET\tVERSION\tLABEL\tROUTE\tBANNER")
	for _, sv := range listing {
		for _, ver := range sv.Versions {
			name := ver.Name
			if ver.IsLast {
				name += " (last)"
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", sv.ContentSet, name, ver.Label, ver.RoutePrefix, ver.Banner)
		}
	}
	return tw.Flush()
}
