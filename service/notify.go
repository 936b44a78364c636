package service

import "power-store/dto"

// Notifier delivers outcome text. Public goes to every connected player,
// Private only to the given player's connections.
type Notifier interface {
	Public(text string)
	Private(playerID int64, text string)
}

type nopNotifier struct{}

func (nopNotifier) Public(string)         {}
func (nopNotifier) Private(int64, string) {}

// NopNotifier drops every message.
var NopNotifier Notifier = nopNotifier{}

// Deliver fans an outcome out: the public line to everyone, the private line
// and any error to the actor alone.
func Deliver(n Notifier, actorID int64, out dto.Outcome) {
	if out.PublicMessage != "" {
		n.Public(out.PublicMessage)
	}
	if out.PrivateMessage != "" {
		n.Private(actorID, out.PrivateMessage)
	}
	if out.Error != "" {
		n.Private(actorID, out.Error)
	}
}

// Failed is the outcome shown when an operation returned err.
func Failed(err error) dto.Outcome {
	return dto.Outcome{Success: false, Error: UserMessage(err)}
}
