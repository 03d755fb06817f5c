package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i-m-samarth-cs/kisan-connect/internal/assistant"
	"github.com/i-m-samarth-cs/kisan-connect/internal/i18n"
)

// =============================================================================
// CHAT / TRANSLATE - backendなしで動く確認用コマンド
// =============================================================================

var chatLang string

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Ask the farming assistant",
	Long:  `With arguments, prints one reply. Without arguments, reads questions from stdin until EOF.`,
	RunE:  runChat,
}

var translateLang string

var translateCmd = &cobra.Command{
	Use:   "translate <text...>",
	Short: "Translate UI strings with the built-in tables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !i18n.IsSupported(translateLang) {
			return fmt.Errorf("unsupported language: %s", translateLang)
		}
		tr, err := i18n.Load()
		if err != nil {
			return err
		}
		lang := i18n.BaseLanguage(translateLang)
		for _, text := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", text, tr.Translate(lang, text))
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatLang, "lang", "l", "en", "reply language tag")
	translateCmd.Flags().StringVarP(&translateLang, "lang", "l", "hi", "target language")
}

func runChat(cmd *cobra.Command, args []string) error {
	bot := assistant.New(0)
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		reply, err := bot.Send(cmd.Context(), strings.Join(args, " "), chatLang)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, reply.Message)
		return nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(out, "> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			reply, err := bot.Send(cmd.Context(), line, chatLang)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, reply.Message)
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return sc.Err()
}
