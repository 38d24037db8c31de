package main

import "strings"

// reorderInterspersedFlags moves flag tokens ahead of positionals so the
// stdlib flag package can parse commands like "verify dist.zip --json".
// valueFlags names the flags that consume the following token.
func reorderInterspersedFlags(arguments []string, valueFlags map[string]bool) []string {
	if len(arguments) == 0 {
		return arguments
	}

	flags := make([]string, 0, len(arguments))
	positionals := make([]string, 0, len(arguments))

	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			positionals = append(positionals, arguments[index+1:]...)
			break
		}
		if len(argument) < 2 || !strings.HasPrefix(argument, "-") {
			positionals = append(positionals, argument)
			continue
		}

		flags = append(flags, argument)
		if strings.Contains(argument, "=") {
			continue
		}
		name := strings.TrimLeft(argument, "-")
		if valueFlags[argument] || valueFlags[name] {
			if index+1 < len(arguments) {
				index++
				flags = append(flags, arguments[index])
			}
		}
	}

	return append(flags, positionals...)
}

func hasExplainFlag(arguments []string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == "--explain" {
			return true
		}
	}
	return false
}
