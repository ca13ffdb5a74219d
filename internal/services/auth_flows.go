package services

import (
	"context"
	"strings"
	"sync"

	"github.com/you/shopfront/domain"
)

// FlowState identifies a step of an OTP challenge/response flow
type FlowState string

const (
	StateAwaitingEmail     FlowState = "awaiting-email"
	StateCollectingProfile FlowState = "collecting-profile"
	StateAwaitingCode      FlowState = "awaiting-code"
	StateDone              FlowState = "done"
)

// flowCore holds the state shared by both OTP flows: the current step, the
// last failure message (cleared at the start of each attempt), and an
// in-flight guard that rejects a second submit while a request is
// outstanding.
type flowCore struct {
	mu      sync.Mutex
	state   FlowState
	email   string
	lastErr string
	busy    bool
}

// begin marks the flow busy for one attempt. It fails when a request is
// already outstanding or the flow is not at the expected step.
func (f *flowCore) begin(expected FlowState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return domain.ErrRequestInFlight
	}
	if f.state != expected {
		return domain.ErrFlowTransition
	}
	f.busy = true
	f.lastErr = ""
	return nil
}

// finish records the attempt's outcome and, on success, moves to next.
func (f *flowCore) finish(err error, next FlowState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		f.lastErr = err.Error()
		return
	}
	f.state = next
}

// fail releases the busy guard recording a validation failure
func (f *flowCore) fail(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.lastErr = err.Error()
	return err
}

func (f *flowCore) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *flowCore) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *flowCore) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

func (f *flowCore) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// LoginFlow drives the login OTP sequence:
// awaiting-email -> awaiting-code -> done.
type LoginFlow struct {
	flowCore
	gateway domain.AuthGateway
	session domain.SessionWriter
}

// NewLoginFlow creates a login flow at the awaiting-email step
func NewLoginFlow(gateway domain.AuthGateway, session domain.SessionWriter) *LoginFlow {
	f := &LoginFlow{gateway: gateway, session: session}
	f.state = StateAwaitingEmail
	return f
}

// SubmitEmail requests a one-time code for the login purpose. On success the
// flow advances to awaiting-code; on failure it stays put with the error
// surfaced via Err().
func (f *LoginFlow) SubmitEmail(ctx context.Context, email string) error {
	if err := f.begin(StateAwaitingEmail); err != nil {
		return err
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return f.fail(domain.ErrEmailRequired)
	}

	err := f.gateway.SendOTP(ctx, email, true)
	if err == nil {
		f.mu.Lock()
		f.email = email
		f.mu.Unlock()
	}
	f.finish(err, StateAwaitingCode)
	return err
}

// SubmitCode verifies the entered code and hands the resulting token to the
// session store. On failure the flow remains at awaiting-code.
func (f *LoginFlow) SubmitCode(ctx context.Context, code string) error {
	if err := f.begin(StateAwaitingCode); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return f.fail(domain.ErrCodeRequired)
	}

	err := f.verify(ctx, code)
	f.finish(err, StateDone)
	return err
}

func (f *LoginFlow) verify(ctx context.Context, code string) error {
	token, err := f.gateway.SignIn(ctx, f.Email(), code)
	if err != nil {
		return err
	}
	return f.session.Login(ctx, token)
}

// Back returns from code entry to email entry, discarding the entered code
// but preserving the email.
func (f *LoginFlow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateAwaitingCode && !f.busy {
		f.state = StateAwaitingEmail
		f.lastErr = ""
	}
}

// RegistrationFlow drives the sign-up OTP sequence:
// collecting-profile -> awaiting-code -> done.
type RegistrationFlow struct {
	flowCore
	gateway  domain.AuthGateway
	session  domain.SessionWriter
	fullName string
}

// NewRegistrationFlow creates a registration flow at the collecting-profile step
func NewRegistrationFlow(gateway domain.AuthGateway, session domain.SessionWriter) *RegistrationFlow {
	f := &RegistrationFlow{gateway: gateway, session: session}
	f.state = StateCollectingProfile
	return f
}

// SubmitProfile validates name and email, then requests a one-time code for
// the registration purpose.
func (f *RegistrationFlow) SubmitProfile(ctx context.Context, fullName, email string) error {
	if err := f.begin(StateCollectingProfile); err != nil {
		return err
	}

	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if fullName == "" {
		return f.fail(domain.ErrNameRequired)
	}
	if email == "" {
		return f.fail(domain.ErrEmailRequired)
	}

	err := f.gateway.SendOTP(ctx, email, false)
	if err == nil {
		f.mu.Lock()
		f.fullName = fullName
		f.email = email
		f.mu.Unlock()
	}
	f.finish(err, StateAwaitingCode)
	return err
}

// SubmitCode finalizes registration with name, email, and code, then hands
// the issued token to the session store.
func (f *RegistrationFlow) SubmitCode(ctx context.Context, code string) error {
	if err := f.begin(StateAwaitingCode); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return f.fail(domain.ErrCodeRequired)
	}

	err := f.complete(ctx, code)
	f.finish(err, StateDone)
	return err
}

func (f *RegistrationFlow) complete(ctx context.Context, code string) error {
	f.mu.Lock()
	fullName, email := f.fullName, f.email
	f.mu.Unlock()

	token, err := f.gateway.SignUp(ctx, fullName, email, code)
	if err != nil {
		return err
	}
	return f.session.Login(ctx, token)
}

// FullName returns the collected profile name
func (f *RegistrationFlow) FullName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullName
}

// Back returns from code entry to the profile step, discarding the entered
// code but preserving name and email.
func (f *RegistrationFlow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateAwaitingCode && !f.busy {
		f.state = StateCollectingProfile
		f.lastErr = ""
	}
}
