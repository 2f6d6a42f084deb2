package agents

import (
	"context"

	"github.com/clinsim/interview-controller/internal/llm"
)

// #region generator

// Generator is the single text-completion capability all four roles share.
// *llm.Client satisfies it; tests inject scripted implementations.
type Generator interface {
	Generate(ctx context.Context, systemPrompt string, messages []llm.Message, params llm.Params) (string, error)
}

// #endregion generator

// #region role

// Role identifies one of the four dialogue/diagnosis personas.
type Role string

const (
	RoleTherapist     Role = "therapist"
	RoleClient        Role = "client"
	RoleDiagnostician Role = "diagnostician"
	RoleAuditor       Role = "auditor"
)

// RoleConfig carries per-role sampling parameters. The roles differ only in
// prompt and parameters, not in type.
type RoleConfig struct {
	Role        Role
	Temperature float32
	MaxTokens   int
}

// RoleConfigs are the built-in per-role parameter sets. The diagnostician
// runs cold so its JSON output stays parseable; the client runs warm so the
// simulated patient varies.
var RoleConfigs = map[Role]RoleConfig{
	RoleTherapist:     {Role: RoleTherapist, Temperature: 0.7, MaxTokens: 256},
	RoleClient:        {Role: RoleClient, Temperature: 0.9, MaxTokens: 256},
	RoleDiagnostician: {Role: RoleDiagnostician, Temperature: 0.2, MaxTokens: 1024},
	RoleAuditor:       {Role: RoleAuditor, Temperature: 0.3, MaxTokens: 512},
}

// #endregion role

// #region profile

// Profile describes the synthetic patient the client role portrays.
type Profile struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Gender     string   `json:"gender,omitempty"`
	Complaints []string `json:"complaints,omitempty"`
	History    string   `json:"history,omitempty"`
}

// #endregion profile
