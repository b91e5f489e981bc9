package domain

import "errors"

var (
	ErrCommandNotFound        = errors.New("command not found")
	ErrRegistryNotInitialized = errors.New("registry not initialized")
	ErrInvalidCommand         = errors.New("invalid command")
	ErrDuplicateCommand       = errors.New("duplicate command name")
	ErrInvalidListener        = errors.New("invalid listener")
	ErrDuplicateListener      = errors.New("duplicate listener name")
	ErrInvalidSupersedes      = errors.New("invalid supersedes relation")
	ErrSendingReplyFailed     = errors.New("failed to send reply")
	ErrEmptyPrompt            = errors.New("empty prompt")
	ErrInvalidPrefix          = errors.New("invalid prefix")
	ErrNotAuthorized          = errors.New("not authorized")
)

const (
	DirectMessageWarning = "I am so sorry, but I can only run commands inside a server. " +
		"Please invite me to one and try again there!"
	ApologyReply = "I am so sorry, but I cannot do that at the moment."
)
