package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/colorchanger/internal/presentation/tui"
	"github.com/aretw0/colorchanger/pkg/domain"
	"github.com/aretw0/colorchanger/pkg/session"
)

// Turner runs one turn against a stored session.
type Turner interface {
	Turn(ctx context.Context, sessionID string, req domain.Request) (*session.TurnResult, error)
}

const commandsHelp = `# Commands

| Command | Host event |
|---|---|
| ` + "`launch`" + ` | open the session |
| ` + "`press <device>`" + ` | press a button while an input handler listens |
| ` + "`wait`" + ` | let the input handler time out |
| ` + "`yes`, `no`, `help`, `stop`, `cancel`" + ` | spoken intents |
| ` + "`color <name>`" + ` or just ` + "`red`" + ` | pick a color |
| ` + "`say <words>`" + ` | an utterance nothing understands |
| ` + "`end`" + ` | the host closes the session |
| ` + "`quit`" + ` | leave the simulator |
`

var (
	ssmlTag     = regexp.MustCompile(`<[^>]+>`)
	spaceRun    = regexp.MustCompile(`\s+`)
	spokenColor = map[string]bool{"red": true, "green": true, "blue": true, "yellow": true, "purple": true, "white": true}
)

// Simulator plays the host side of a session on a terminal. It delivers typed
// commands as requests and emulates the recognizers of the armed input handler.
type Simulator struct {
	engine    Turner
	sessionID string
	out       io.Writer
	profile   termenv.Profile
	render    func(string) (string, error)

	handler *domain.InputHandler
	pressed []string
	seq     int
}

// SimulatorOption configures the Simulator.
type SimulatorOption func(*Simulator)

// WithProfile sets the color profile used to paint lights.
func WithProfile(p termenv.Profile) SimulatorOption {
	return func(s *Simulator) {
		s.profile = p
	}
}

// WithMarkdown sets the renderer for the command reference.
func WithMarkdown(render func(string) (string, error)) SimulatorOption {
	return func(s *Simulator) {
		s.render = render
	}
}

// NewSimulator creates a Simulator writing to out.
func NewSimulator(engine Turner, sessionID string, out io.Writer, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		engine:    engine,
		sessionID: sessionID,
		out:       out,
		profile:   termenv.Ascii,
		render:    tui.NewRenderer(false),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads commands from in until quit, end of input, or the session ends.
func (s *Simulator) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		done, err := s.Exec(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Exec runs one command line. It reports done once the session is over.
func (s *Simulator) Exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "commands", "?":
		out, err := s.render(commandsHelp)
		if err != nil {
			return false, err
		}
		fmt.Fprint(s.out, out)
		return false, nil
	case "launch", "start":
		return s.send(ctx, domain.Request{Kind: domain.RequestLaunch})
	case "press", "p":
		if len(args) != 1 {
			printSystemMessage(s.out, "usage: press <device>")
			return false, nil
		}
		return s.press(ctx, args[0])
	case "wait", "timeout":
		return s.timeout(ctx)
	case "end":
		return s.send(ctx, domain.Request{Kind: domain.RequestSessionEnded, Reason: "USER_INITIATED"})
	case "yes", "no", "help", "stop", "cancel":
		return s.send(ctx, domain.Request{Kind: domain.RequestIntent, Intent: domain.Intent(cmd)})
	case "color":
		if len(args) != 1 {
			printSystemMessage(s.out, "usage: color <name>")
			return false, nil
		}
		return s.send(ctx, domain.Request{Kind: domain.RequestIntent, Intent: domain.IntentColor, Color: args[0]})
	case "say":
		return s.send(ctx, domain.Request{Kind: domain.RequestIntent, Intent: domain.Intent(strings.Join(args, "_"))})
	default:
		if spokenColor[cmd] {
			return s.send(ctx, domain.Request{Kind: domain.RequestIntent, Intent: domain.IntentColor, Color: cmd})
		}
		printSystemMessage(s.out, "unknown command %q, type ? for help", cmd)
		return false, nil
	}
}

// press emulates the armed recognizers: the roll call handler reports
// the first device, then both once a second distinct one goes down.
func (s *Simulator) press(ctx context.Context, device string) (bool, error) {
	if s.handler == nil {
		printSystemMessage(s.out, "no input handler is listening")
		return false, nil
	}

	var ev domain.ButtonEvent
	switch {
	case s.listensFor(domain.EventFirstCheckedIn):
		if slices.Contains(s.pressed, device) {
			printSystemMessage(s.out, "%s already checked in, press another button", device)
			return false, nil
		}
		s.pressed = append(s.pressed, device)
		if len(s.pressed) == 1 {
			ev = pressEvent(domain.EventFirstCheckedIn, device)
		} else {
			ev = pressEvent(domain.EventSecondCheckedIn, s.pressed...)
		}
	case s.listensFor(domain.EventButtonDown):
		s.pressed = append(s.pressed, device)
		ev = pressEvent(domain.EventButtonDown, device)
	default:
		printSystemMessage(s.out, "the input handler does not react to presses")
		return false, nil
	}
	return s.deliver(ctx, ev)
}

func (s *Simulator) timeout(ctx context.Context) (bool, error) {
	if s.handler == nil || !s.listensFor(domain.EventTimeout) {
		printSystemMessage(s.out, "no input handler is waiting to time out")
		return false, nil
	}
	return s.deliver(ctx, pressEvent(domain.EventTimeout, s.pressed...))
}

func (s *Simulator) deliver(ctx context.Context, ev domain.ButtonEvent) (bool, error) {
	token := s.handler.Token
	if s.handler.Events[ev.Name.String()].EndsHandler {
		s.handler = nil
		s.pressed = nil
	}
	return s.send(ctx, domain.Request{
		Kind:                 domain.RequestInputHandlerEvent,
		OriginatingRequestID: token,
		Events:               []domain.ButtonEvent{ev},
	})
}

func (s *Simulator) listensFor(name domain.EventName) bool {
	_, ok := s.handler.Events[name.String()]
	return ok
}

func (s *Simulator) send(ctx context.Context, req domain.Request) (bool, error) {
	s.seq++
	req.RequestID = fmt.Sprintf("sim-%d", s.seq)

	res, err := s.engine.Turn(ctx, s.sessionID, req)
	if err != nil {
		return false, fmt.Errorf("turn failed: %w", err)
	}
	s.apply(res.Response)
	s.print(res.Response)

	if res.Response.EndSession {
		printSystemMessage(s.out, "Session '%s' ended.", s.sessionID)
		return true, nil
	}
	return false, nil
}

// apply tracks the input handler the way the host would: stop first, then start.
func (s *Simulator) apply(resp domain.Response) {
	if resp.Stop != nil && s.handler != nil && s.handler.Token == resp.Stop.Token {
		s.handler = nil
		s.pressed = nil
	}
	if resp.Start != nil {
		s.handler = resp.Start
		s.pressed = nil
	}
}

func (s *Simulator) print(resp domain.Response) {
	if text := spoken(resp.SpeechText()); text != "" {
		fmt.Fprintf(s.out, "Alexa: %s\n", text)
	}
	if text := spoken(resp.RepromptText()); text != "" {
		fmt.Fprintf(s.out, "  (reprompt) %s\n", text)
	}
	if resp.Stop != nil {
		fmt.Fprintf(s.out, "  input handler %s stopped\n", resp.Stop.Token)
	}
	if resp.Start != nil {
		fmt.Fprintf(s.out, "  input handler %s listening for %ds\n", resp.Start.Token, resp.Start.TimeoutMS/1000)
	}
	for _, d := range resp.Lights {
		tui.RenderDirective(s.out, s.profile, d)
	}
	fmt.Fprintf(s.out, "  microphone %s\n", resp.Microphone)
}

// spoken renders SSML the way a listener hears it.
func spoken(ssml string) string {
	text := strings.ReplaceAll(ssml, domain.WaitingAudio, "[ticking]")
	text = ssmlTag.ReplaceAllString(text, " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

func pressEvent(name domain.EventName, devices ...string) domain.ButtonEvent {
	ev := domain.ButtonEvent{Name: name, InputEvents: []domain.InputEvent{}}
	for _, d := range devices {
		ev.InputEvents = append(ev.InputEvents, domain.InputEvent{DeviceID: d, Action: string(domain.ActionDown)})
	}
	return ev
}

// Banner prints the banner the way the simulator paints everything else.
func (s *Simulator) Banner(version string) {
	tui.PrintBanner(s.out, s.profile, version)
	printSystemMessage(s.out, "Session '%s'. Type ? for commands.", s.sessionID)
}
