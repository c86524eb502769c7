package starling

import "fmt"

// Environment selects which Starling API host to call.
type Environment string

const (
	EnvLive    Environment = "live"
	EnvSandbox Environment = "sandbox"
)

// BaseURL returns the API origin for the environment.
func (e Environment) BaseURL() string {
	switch e {
	case EnvLive:
		return "https://api.starlingbank.com"
	case EnvSandbox:
		return "https://api-sandbox.starlingbank.com"
	}
	return ""
}

// ParseEnvironment validates an environment name from config or flags.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvLive:
		return EnvLive, nil
	case EnvSandbox:
		return EnvSandbox, nil
	}
	return "", fmt.Errorf("unknown environment %q (want %q or %q)", s, EnvLive, EnvSandbox)
}
