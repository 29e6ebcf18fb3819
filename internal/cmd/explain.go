package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pthm/ccqe/internal/analyzer"
	"github.com/pthm/ccqe/internal/classifier"
	"github.com/pthm/ccqe/internal/config"
	"github.com/pthm/ccqe/internal/parser"
	"github.com/pthm/ccqe/internal/ui"
)

var codeSnippet string

var explainCmd = &cobra.Command{
	Use:   "explain <comment>",
	Short: "Score a single comment against a code snippet",
	Long: `Score one comment as if it were written directly below a code snippet,
and show the signals behind its label.

Examples:
  ccqe explain "increment i if zero" --code $'if i == 0:\n    i += 1'
  ccqe explain "retry because the API drops idle connections"`,
	Args:         cobra.ExactArgs(1),
	RunE:         runExplain,
	SilenceUsage: true,
}

func init() {
	explainCmd.Flags().StringVar(&codeSnippet, "code", "", "Code the comment refers to")
	RootCmd.AddCommand(explainCmd)
}

// explanation is the machine-readable form of an explain run
type explanation struct {
	Comment    string             `json:"comment" yaml:"comment"`
	Label      classifier.Label   `json:"label" yaml:"label"`
	Score      float64            `json:"score" yaml:"score"`
	Signals    classifier.Signals `json:"signals" yaml:"signals"`
	Rule       string             `json:"rule" yaml:"rule"`
	Suggestion string             `json:"suggestion" yaml:"suggestion"`
}

// snippetSpan places comment on the line after code and returns the span
// together with the combined source.
func snippetSpan(comment, code string) (parser.CommentSpan, string) {
	code = strings.TrimRight(code, "\r\n")
	line := 1
	source := "# " + comment + "\n"
	if code != "" {
		line = strings.Count(code, "\n") + 2
		source = code + "\n" + source
	}
	span := parser.CommentSpan{
		Location: parser.Location{File: "<snippet>", Line: line},
		Text:     comment,
		Kind:     parser.KindInline,
	}
	return span, source
}

func runExplain(cmd *cobra.Command, args []string) error {
	comment := strings.TrimSpace(args[0])
	comment = strings.TrimSpace(strings.TrimLeft(comment, "#"))
	if comment == "" {
		return errors.New("comment must not be empty")
	}

	span, source := snippetSpan(comment, codeSnippet)
	f := analyzer.Evaluate(classifier.NewHeuristicClassifier(), span, source)

	return writeExplanation(os.Stdout, GetUI(), viper.GetString(config.KeyFormat), explanation{
		Comment:    comment,
		Label:      f.Score.Label,
		Score:      f.Score.Score,
		Signals:    f.Score.Signals,
		Rule:       f.Rule,
		Suggestion: f.Suggestion,
	})
}

func writeExplanation(w io.Writer, u *ui.UI, format string, e explanation) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(e)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e); err != nil {
			return err
		}
		return enc.Close()
	}

	s := u.Styles
	style, icon := s.Label(e.Label)
	fmt.Fprintf(w, "%s %s\n", style.Render(icon), style.Render(fmt.Sprintf("%s %.2f", e.Label, e.Score)))
	fmt.Fprintln(w, s.Quote.Render("  > "+e.Comment))
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Subheader.Render("Signals"))
	fmt.Fprintf(w, "  length       %d\n", e.Signals.Length)
	fmt.Fprintf(w, "  intent hits  %d\n", e.Signals.IntentHits)
	fmt.Fprintf(w, "  redundancy   %.2f\n", e.Signals.Redundancy)
	fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "%s %s\n", s.Rule.Render("["+e.Rule+"]"), e.Suggestion)
	return err
}
