/*
Package colorchanger is a voice session engine for a two-button light game.

A session walks through three phases. ROLL_CALL discovers exactly two buttons
by arming a timed input handler on the host. PLAY lets the user pick a color and
lights the pressed button in it. EXIT asks whether to keep going after a timeout.

Every turn is a pure function of the stored session attributes and the host
request. Input handler events carry the token of the registration that produced
them; events whose token does not match the current registration are dropped.

# Usage

	engine := colorchanger.New(colorchanger.WithLogger(logger))

	res, err := engine.Turn(ctx, "session-1", colorchanger.Launch("req-1"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(res.Response.SpeechText())

Hosts that keep the attributes themselves call Handle with the state instead.
Turn persists through any ports.SessionStore: memory, file, redis or sqlite.
*/
package colorchanger
