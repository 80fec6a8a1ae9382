package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robalobadob/pillgame/apps/go-server/internal/catalog"
	"github.com/robalobadob/pillgame/apps/go-server/internal/feedback"
	"github.com/robalobadob/pillgame/apps/go-server/internal/game"
)

// runPlay reads commands from in until quit or EOF and writes the board
// and localized feedback to out.
func runPlay(in io.Reader, out io.Writer, cat *catalog.Catalog, lang string) error {
	g := game.New(cat)
	tr := feedback.For(lang, "")

	printBoard(out, g, tr)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var intent game.Intent
		switch cmd, args := strings.ToLower(fields[0]), fields[1:]; cmd {
		case "quit", "exit", "q":
			return nil
		case "show":
			printBoard(out, g, tr)
			continue
		case "reset":
			intent = game.ResetIntent{}
		case "place":
			n, err := intArgs(args, 3)
			if err != nil {
				fmt.Fprintln(out, "usage: place <pill> <pack> <slot>")
				continue
			}
			intent = game.PlaceIntent{TokenID: n[0], ContainerID: n[1], SlotID: n[2]}
		case "remove":
			n, err := intArgs(args, 2)
			if err != nil {
				fmt.Fprintln(out, "usage: remove <pack> <slot>")
				continue
			}
			intent = game.RemoveIntent{ContainerID: n[0], SlotID: n[1]}
		default:
			fmt.Fprintf(out, "unknown command %q (place, remove, reset, show, quit)\n", cmd)
			continue
		}

		res, err := g.Apply(intent)
		for _, m := range tr.Messages(res) {
			fmt.Fprintln(out, m)
		}
		switch {
		case err == nil:
		case errors.Is(err, game.ErrSlotOccupied):
			// already reported by the occupied message
		default:
			fmt.Fprintf(out, "! %v\n", err)
		}
		if res.Outcome == game.OutcomeNothingToRemove {
			fmt.Fprintln(out, "! slot is empty")
		}
		if res.Delta != 0 || res.Outcome == game.OutcomeReset {
			fmt.Fprintf(out, "score: %d (%+d)\n", g.Score, res.Delta)
		}
		if res.Outcome == game.OutcomeReset {
			printBoard(out, g, tr)
		}
	}
}

func intArgs(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d arguments, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// printBoard writes the pool and every blister pack.
func printBoard(out io.Writer, g *game.Game, tr *feedback.Translator) {
	fmt.Fprintf(out, "score: %d\n", g.Score)
	fmt.Fprint(out, "pills:")
	if len(g.Pool) == 0 {
		fmt.Fprint(out, " (none)")
	}
	for _, t := range g.Pool {
		fmt.Fprintf(out, " [%d] %s", t.ID, tr.Medication(t.Name))
	}
	fmt.Fprintln(out)

	for _, c := range g.Containers {
		fmt.Fprintf(out, "pack %d %s %s:", c.ID, c.Icon, tr.Condition(c.Condition))
		for _, s := range c.Slots {
			fmt.Fprintf(out, "  (%d) %s", s.ID, slotText(s, tr))
		}
		fmt.Fprintln(out)
	}
}

func slotText(s game.Slot, tr *feedback.Translator) string {
	if s.Empty() {
		return "-"
	}
	mark := "x"
	if s.Mark == game.MarkCorrect {
		mark = "ok"
	}
	return tr.Medication(s.Token.Name) + " " + mark
}
