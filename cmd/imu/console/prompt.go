package console

import (
	"strings"

	"github.com/chzyer/readline"
)

const (
	Yes = "y"
	No  = "n"
)

// YesOrNo asks a y/n question. An empty answer means no, the safe default
// for anything that touches the bus.
func YesOrNo(question string) (string, error) {
	return Prompt(question, No, Yes)
}

// Prompt reads one line from the terminal. With constraints given, the answer
// is matched case-insensitively against them and anything unrecognized falls
// back to the first constraint, which is also shown uppercased as the default.
func Prompt(question string, constraints ...string) (string, error) {
	if len(constraints) == 0 {
		rl, err := readline.New(question + " ")
		if err != nil {
			return "", err
		}
		return rl.Readline()
	}
	opts := make([]string, len(constraints))
	copy(opts, constraints)
	opts[0] = strings.ToUpper(opts[0])
	rl, err := readline.New(question + " [" + strings.Join(opts, "/") + "]: ")
	if err != nil {
		return "", err
	}
	response, err := rl.Readline()
	if err != nil {
		return "", err
	}
	normalized := strings.ToLower(strings.TrimSpace(response))
	for _, c := range constraints {
		if normalized == c {
			return normalized, nil
		}
	}
	return constraints[0], nil
}
