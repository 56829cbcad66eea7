package util

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrEmailRegistered = errors.New("email is already registered")

	// Relationship graph
	ErrConnectionLimit  = errors.New("connection limit reached")
	ErrAlreadyConnected = errors.New("accounts are already connected")
	ErrSelfConnection   = errors.New("cannot connect an account to itself")
	ErrNotConnected     = errors.New("accounts are not connected")

	// Circles
	ErrEmptyCircleSet  = errors.New("at least one circle is required")
	ErrForeignCircle   = errors.New("circle is not owned by the acting account")
	ErrDuplicateCircle = errors.New("a circle with that name already exists")

	// Invitations and intros
	ErrInvitationExpired = errors.New("the invitation has expired")
	ErrSelfIntro         = errors.New("cannot introduce an account to itself")

	// Posts
	ErrEmptyPost = errors.New("a post must have either text or an image")
)
