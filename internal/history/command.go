package history

// Command is an invertible edit. Do applies the change and Undo reverts it
// exactly; both run to completion and cannot fail.
type Command interface {
	Do()
	Undo()
	Description() string
}

type funcCommand struct {
	description string
	do          func()
	undo        func()
}

// Func adapts a pair of closures to a Command.
func Func(description string, do, undo func()) Command {
	return &funcCommand{description: description, do: do, undo: undo}
}

func (c *funcCommand) Do() {
	if c.do != nil {
		c.do()
	}
}

func (c *funcCommand) Undo() {
	if c.undo != nil {
		c.undo()
	}
}

func (c *funcCommand) Description() string { return c.description }

type group struct {
	description string
	commands    []Command
}

// Group combines commands into one undo step. Do applies them in order and
// Undo reverts them in reverse order. Nil entries are dropped.
func Group(description string, commands ...Command) Command {
	g := &group{description: description}
	for _, cmd := range commands {
		if cmd != nil {
			g.commands = append(g.commands, cmd)
		}
	}
	return g
}

func (g *group) Do() {
	for _, cmd := range g.commands {
		cmd.Do()
	}
}

func (g *group) Undo() {
	for i := len(g.commands) - 1; i >= 0; i-- {
		g.commands[i].Undo()
	}
}

func (g *group) Description() string { return g.description }
