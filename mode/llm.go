package mode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khaledhikmat/vs-robot-eye/pipeline"
	"github.com/khaledhikmat/vs-robot-eye/service/llm"
	"github.com/khaledhikmat/vs-robot-eye/service/lgr"
	"golang.org/x/xerrors"
)

// LLM talks to the local model. With arguments it answers them once; without
// it reads prompts from stdin and keeps the conversation history.
func LLM(canxCtx context.Context, svcs pipeline.ServicesFactory, opts Options) error {
	var image []byte
	if opts.ImagePath != "" {
		data, err := os.ReadFile(opts.ImagePath)
		if err != nil {
			return xerrors.Errorf("error reading image %s: %w", opts.ImagePath, err)
		}
		image = data
	}

	if len(opts.Args) > 0 {
		answer, err := svcs.LLMSvc.Generate(canxCtx, nil, strings.Join(opts.Args, " "), image)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, answer)
		return nil
	}

	return converse(canxCtx, svcs.LLMSvc, os.Stdin, os.Stdout, image)
}

// converse runs one turn per input line. The image goes with the first turn only.
func converse(canxCtx context.Context, svc llm.IService, in io.Reader, out io.Writer, image []byte) error {
	history := []llm.Message{}
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if canxCtx.Err() != nil {
			return nil
		}

		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			continue
		}

		answer, err := svc.Generate(canxCtx, history, prompt, image)
		if err != nil {
			lgr.Logger.Error("llm call failed", lgr.Error(err))
			continue
		}
		image = nil

		fmt.Fprintln(out, answer)
		history = append(history,
			llm.Message{Role: llm.RoleUser, Content: prompt},
			llm.Message{Role: llm.RoleAssistant, Content: answer},
		)
	}
}
