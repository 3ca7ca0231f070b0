package config

import (
	"fmt"

	"github.com/atlanticdynamic/protohandler/internal/fancy"
)

const maxSourceLength = 80

// String returns a pretty-printed tree representation of the settings
func (s *Settings) String() string {
	return SettingsTree(s)
}

// SettingsTree converts Settings into a rendered tree string. Script paths
// are marked with whether the file currently exists.
func SettingsTree(s *Settings) string {
	t := fancy.Tree()

	source := s.Source
	if source == "" {
		source = "compiled defaults"
	}
	t.Root(fancy.RootStyle.Render(
		fmt.Sprintf("Protohandler Settings (%s)", fancy.TruncateString(source, maxSourceLength))))

	t.Child(fmt.Sprintf("LogFile: %s", fancy.PathText(s.LogFile)))
	t.Child(fmt.Sprintf("ScriptPath: %s %s", fancy.ScriptText(s.ScriptPath), scriptStatus(s.ScriptPath)))
	t.Child(fmt.Sprintf("Engine: %s", fancy.ComponentStyle.Render(s.Engine)))

	protocols := fancy.BranchNode("Protocols", fmt.Sprintf("(%d)", len(s.Protocols)))
	for _, p := range s.Protocols {
		protocols.Child(fmt.Sprintf("%s: %s %s", p.Name, fancy.ScriptText(p.ScriptPath), scriptStatus(p.ScriptPath)))
	}
	t.Child(protocols)

	return t.String()
}

func scriptStatus(path string) string {
	if FileExists(path) {
		return fancy.ValidText("(found)")
	}
	return fancy.ErrorText("(missing)")
}
