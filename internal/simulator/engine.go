package simulator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"dca-simulator/internal/analysis"
	"dca-simulator/internal/config"
	"dca-simulator/internal/strategy"
	"dca-simulator/internal/ui"
)

const defaultSession = "default"

// Engine is the interactive host around the recalculation core.
// It owns the sessions; every edit triggers a full recompute.
type Engine struct {
	Cfg      *config.AppConfig
	UI       *ui.ConsoleUI
	Log      *zap.Logger
	Store    *strategy.SessionStore
	Session  *strategy.Session
	Recalc   *strategy.Recalculator
	Running  bool
	Commands int
}

// NewEngine wires the session store and recalculator from config
func NewEngine(cfg *config.AppConfig, console *ui.ConsoleUI, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	store := strategy.NewSessionStore(cfg.Limits.MaxSteps)

	return &Engine{
		Cfg:     cfg,
		UI:      console,
		Log:     log,
		Store:   store,
		Session: store.GetOrCreate(defaultSession),
		Recalc:  strategy.NewRecalculator(strategy.Options{Extended: cfg.Display.Extended}),
		Running: true,
	}
}

// Run reads commands line by line until EOF, quit or ctx is done
func (e *Engine) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for e.Running && scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Execute(scanner.Text()); err != nil {
			e.UI.LogError(err.Error())
		}
	}
	return scanner.Err()
}

// Execute runs a single command line
func (e *Engine) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	e.Commands++
	e.Log.Debug("command", zap.String("cmd", name), zap.Strings("args", args), zap.String("session", e.Session.Name))

	var err error
	switch name {
	case "help", "?":
		e.UI.Println(helpText)
	case "gen", "generate", "reset":
		err = e.generate(args)
	case "set":
		err = e.set(args)
	case "add":
		err = e.add(args)
	case "insert":
		err = e.insert(args)
	case "del", "delete", "rm":
		err = e.remove(args)
	case "show":
		e.refresh()
	case "summary":
		e.printSummary(e.Session.Derive(e.Recalc))
	case "ext":
		err = e.extended(args)
	case "use":
		err = e.use(args)
	case "sessions":
		e.listSessions()
	case "drop":
		err = e.drop(args)
	case "quit", "exit":
		e.Running = false
	default:
		err = fmt.Errorf("unknown command '%s' (try 'help')", name)
	}

	if err != nil {
		e.Log.Warn("command rejected", zap.String("cmd", name), zap.Error(err))
	}
	return err
}

func (e *Engine) generate(args []string) error {
	params, err := ParseGenerateArgs(e.Cfg.Generator, args)
	if err != nil {
		return err
	}
	if err := e.Cfg.CheckStepCount(params.NumSteps); err != nil {
		return err
	}

	steps, err := strategy.Generate(params)
	if err != nil {
		return err
	}
	if err := e.Session.Reset(steps); err != nil {
		return err
	}

	e.UI.LogInfo(fmt.Sprintf("Generated %d steps from $%.4f (%+.2f%%/step), %.2f %s (%+.2f%%/step), x%.2f",
		params.NumSteps, params.StartPrice, params.PriceStepPct, params.StartVolume, e.UI.Asset,
		params.VolumeIncreasePct, params.Leverage))
	e.refresh()
	return nil
}

func (e *Engine) set(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: set <step> price|volume|leverage <value>")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	v, err := parseNumber(args[2])
	if err != nil {
		return err
	}

	switch strings.ToLower(args[1]) {
	case "price", "entry":
		err = e.Session.SetEntryPrice(index, v)
	case "volume", "vol":
		err = e.Session.SetVolume(index, v)
		if err == nil && v < 0 {
			e.UI.LogWarning(fmt.Sprintf("Step %d volume is negative (withdrawal); cumulative figures may decrease", index))
		}
	case "leverage", "lev":
		err = e.Session.SetLeverage(index, v)
	default:
		return fmt.Errorf("unknown field '%s': use price, volume or leverage", args[1])
	}
	if err != nil {
		return err
	}

	e.refresh()
	return nil
}

func (e *Engine) add(args []string) error {
	st, err := parseStep(args)
	if err != nil {
		return fmt.Errorf("usage: add <price> <volume> <leverage>: %w", err)
	}
	if err := e.Session.Append(st); err != nil {
		return err
	}
	e.refresh()
	return nil
}

func (e *Engine) insert(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: insert <step> <price> <volume> <leverage>")
	}
	at, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	st, err := parseStep(args[1:])
	if err != nil {
		return err
	}
	if err := e.Session.Insert(at, st); err != nil {
		return err
	}
	e.refresh()
	return nil
}

func (e *Engine) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: del <step>")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	if err := e.Session.Remove(index); err != nil {
		return err
	}
	e.refresh()
	return nil
}

func (e *Engine) extended(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ext on|off")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		e.Recalc = strategy.NewRecalculator(strategy.Options{Extended: true})
	case "off":
		e.Recalc = strategy.NewRecalculator(strategy.Options{Extended: false})
	default:
		return fmt.Errorf("usage: ext on|off")
	}
	e.refresh()
	return nil
}

func (e *Engine) use(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: use <session>")
	}
	e.Session = e.Store.GetOrCreate(args[0])
	e.UI.LogInfo(fmt.Sprintf("Switched to session %s (%d steps)", e.Session.Name, e.Session.Len()))
	return nil
}

func (e *Engine) drop(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: drop <session>")
	}
	if args[0] == e.Session.Name {
		return fmt.Errorf("cannot drop the active session %s", args[0])
	}
	if err := e.Store.Delete(args[0]); err != nil {
		return err
	}
	e.UI.LogInfo(fmt.Sprintf("Dropped session %s", args[0]))
	return nil
}

func (e *Engine) listSessions() {
	for _, name := range e.Store.Names() {
		marker := "  "
		if name == e.Session.Name {
			marker = "* "
		}
		s, err := e.Store.Get(name)
		if err != nil {
			continue
		}
		e.UI.Println(fmt.Sprintf("%s%s (%d steps)", marker, name, s.Len()))
	}
}

// refresh recomputes the active session and prints table plus summary
func (e *Engine) refresh() {
	rows := e.Session.Derive(e.Recalc)
	e.UI.PrintTable(rows, e.Recalc.Extended())
	e.printSummary(rows)
	e.Log.Debug("recalculated", zap.String("session", e.Session.Name), zap.Int("steps", len(rows)))
}

func (e *Engine) printSummary(rows []strategy.DerivedStep) {
	s, ok := analysis.Summarize(rows)
	if !ok {
		e.UI.LogInfo("Session is empty. Run 'gen' to create a ladder.")
		return
	}
	e.UI.PrintSummary(s)
	if first := strategy.FirstUnsafe(rows); first != nil {
		_, reason := strategy.CheckStep(*first)
		e.UI.LogWarning(reason)
	}
}

const helpText = `Commands:
  gen [price=P step=%] [volume=V growth=%] [leverage=L] [steps=N]   generate a new ladder
  set <step> price|volume|leverage <value>                          edit one step
  add <price> <volume> <leverage>                                   append a step
  insert <step> <price> <volume> <leverage>                         insert before a step
  del <step>                                                        remove a step
  show | summary                                                    print table / dashboard
  ext on|off                                                        toggle safety columns
  use <name> | sessions | drop <name>                               manage what-if sessions
  quit                                                              exit`
