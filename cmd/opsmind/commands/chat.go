package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatUser string

type answerer interface {
	Answer(ctx context.Context, userID, query string, onToken func(string)) (string, error)
}

// runTurn prints one exchange, streaming tokens as they arrive. When
// nothing was streamed (for example when stream setup fails and the
// answer degrades to an error string) the returned answer is printed
// instead, so the user always sees what was recorded.
func runTurn(ctx context.Context, ag answerer, w io.Writer, userID, query string) error {
	fmt.Fprint(w, "Agent: ")
	var streamed bool
	answer, err := ag.Answer(ctx, userID, query, func(token string) {
		streamed = true
		fmt.Fprint(w, token)
	})
	if !streamed {
		fmt.Fprint(w, answer)
	}
	fmt.Fprintln(w)
	return err
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ag, err := buildAgent(cfg)
		if err != nil {
			return err
		}

		fmt.Println("opsmind ready. Type 'exit' to quit.")
		fmt.Println()

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		for {
			fmt.Print("You: ")
			if !scanner.Scan() {
				fmt.Println()
				return scanner.Err()
			}
			query := strings.TrimSpace(scanner.Text())
			if query == "" {
				continue
			}
			if q := strings.ToLower(query); q == "exit" || q == "quit" {
				fmt.Println("Bye.")
				return nil
			}

			if err := runTurn(cmd.Context(), ag, os.Stdout, chatUser, query); err != nil {
				// The answer was shown; only its persistence failed.
				logger.Error("turn recorded incompletely", "err", err)
			}
			fmt.Println(strings.Repeat("-", 80))
		}
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatUser, "user", "local", "user id scoping long-term memory")
}
