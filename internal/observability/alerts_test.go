package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type alertRule struct {
	Alert       string            `yaml:"alert"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      map[string]string `yaml:"labels"`
	Annotations map[string]string `yaml:"annotations"`
}

type alertGroup struct {
	Name  string      `yaml:"name"`
	Rules []alertRule `yaml:"rules"`
}

type alertSpec struct {
	Groups []alertGroup `yaml:"groups"`
}

func TestLocatorAlertRules(t *testing.T) {
	path := filepath.Join("..", "..", "deploy", "prometheus", "alerts", "locator.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read alert file: %v", err)
	}

	var spec alertSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		t.Fatalf("failed to unmarshal alert file: %v", err)
	}

	if len(spec.Groups) == 0 {
		t.Fatalf("expected at least one alert group")
	}

	seen := map[string]bool{}
	for _, group := range spec.Groups {
		for _, rule := range group.Rules {
			if rule.Alert == "" || rule.Expr == "" {
				t.Fatalf("group %s has a rule without alert or expr", group.Name)
			}
			if !strings.Contains(rule.Expr, "locator_") {
				t.Fatalf("alert %s does not reference a locator metric: %s", rule.Alert, rule.Expr)
			}
			if rule.Labels["severity"] == "" {
				t.Fatalf("alert %s missing severity label", rule.Alert)
			}
			if rule.Annotations["summary"] == "" {
				t.Fatalf("alert %s missing summary annotation", rule.Alert)
			}
			seen[rule.Alert] = true
		}
	}

	for _, name := range []string{"LocatorListingsEmpty", "LocatorListingsReloadFailing"} {
		if !seen[name] {
			t.Fatalf("expected alert %s to be defined", name)
		}
	}
}
