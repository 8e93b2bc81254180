package nodedetails

import (
	"fmt"
	"strings"
)

const (
	commandPreamble = "docker run --rm \\\n" +
		"-v $(pwd)/in:/incoming \\\n" +
		"-v $(pwd)/out:/outgoing \\\n"
	lineContinuation = " \\\n"
	commandTrailer   = "/incoming" + "/outgoing"
)

// ParameterTokens returns one "<flag> <value>" token per binding and matching
// plugin parameter, in binding order. Bindings that match no parameter are
// dropped. Parameters sharing a name each produce a token.
func ParameterTokens(params []*PluginParameter, bindings []*ParameterBinding) []string {
	var tokens []string
	for _, binding := range bindings {
		if binding == nil {
			continue
		}
		for _, param := range params {
			if param == nil || param.Name != binding.ParamName {
				continue
			}
			tokens = append(tokens, fmt.Sprintf("%s %s", param.Flag, binding.Value))
		}
	}
	return tokens
}

// Command reconstructs a docker invocation equivalent to the node's execution
// on the compute environment. It returns "" if plugin is nil.
func Command(plugin *Plugin, params []*PluginParameter, bindings []*ParameterBinding) string {
	if plugin == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(commandPreamble)
	b.WriteString(plugin.DockImage + lineContinuation)
	b.WriteString(plugin.SelfExec + lineContinuation)
	if tokens := ParameterTokens(params, bindings); len(tokens) > 0 {
		b.WriteString(strings.Join(tokens, " ") + lineContinuation)
	}
	b.WriteString(commandTrailer)
	return strings.TrimSpace(b.String())
}
