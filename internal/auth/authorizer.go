package auth

import "log/slog"

const (
	PolicyVersion  = "2012-10-17"
	ActionInvoke   = "execute-api:Invoke"
	EffectAllow    = "Allow"
	EffectDeny     = "Deny"
	AnyResource    = "*"
	DefaultSubject = "user"
)

// Statement is a single policy statement.
type Statement struct {
	Action   string `json:"Action"`
	Effect   string `json:"Effect"`
	Resource string `json:"Resource"`
}

// PolicyDocument is the policy attached to an authorization decision.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Response is the decision handed to the routing layer. A denied request
// still carries a principal, the fixed DefaultSubject.
type Response struct {
	PrincipalID    string         `json:"principalId"`
	PolicyDocument PolicyDocument `json:"policyDocument"`
}

// Allowed reports whether every statement of the decision allows access.
func (r Response) Allowed() bool {
	if len(r.PolicyDocument.Statement) == 0 {
		return false
	}
	for _, s := range r.PolicyDocument.Statement {
		if s.Effect != EffectAllow {
			return false
		}
	}
	return true
}

// TokenVerifier is implemented by *Verifier.
type TokenVerifier interface {
	Verify(header string) (Identity, error)
}

// Authorizer maps token verification onto an all-or-nothing policy.
type Authorizer struct {
	verifier TokenVerifier
	logger   *slog.Logger
}

func NewAuthorizer(verifier TokenVerifier, logger *slog.Logger) *Authorizer {
	return &Authorizer{verifier: verifier, logger: logger}
}

// Authorize never fails: verification errors become a Deny decision.
func (a *Authorizer) Authorize(header string) Response {
	identity, err := a.verifier.Verify(header)
	if err != nil {
		a.logger.Error("User not authorized", "error", err)
		return newResponse(DefaultSubject, EffectDeny)
	}
	return newResponse(identity.Subject, EffectAllow)
}

func newResponse(principalID, effect string) Response {
	return Response{
		PrincipalID: principalID,
		PolicyDocument: PolicyDocument{
			Version: PolicyVersion,
			Statement: []Statement{
				{Action: ActionInvoke, Effect: effect, Resource: AnyResource},
			},
		},
	}
}
