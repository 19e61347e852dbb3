package eligibility

import (
	"embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shadowgoose/grantpulse/internal/models"
)

//go:embed config/profile.yaml
var profileYAML embed.FS

// LoadProfile returns the eligibility profile. When path is non-empty the
// file at that path wins, otherwise the embedded default is used. Environment
// variables inside the YAML (e.g. ${NOTIFICATION_EMAIL}) are expanded.
func LoadProfile(path string) (models.EligibilityProfile, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = profileYAML.ReadFile("config/profile.yaml")
	}
	if err != nil {
		return models.EligibilityProfile{}, err
	}

	expanded := os.ExpandEnv(string(data))

	var profile models.EligibilityProfile
	if err := yaml.Unmarshal([]byte(expanded), &profile); err != nil {
		return models.EligibilityProfile{}, err
	}
	return profile, nil
}
