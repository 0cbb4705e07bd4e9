// Package prompt 管理三个生成阶段的提示词模板
package prompt

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptResearchV1 PromptID = "research_v1"
	PromptDraftV1    PromptID = "draft_v1"
	PromptRefineV1   PromptID = "refine_v1"
)

// Rendered 渲染后的提示词，System 为空表示该阶段不发送系统指令
type Rendered struct {
	System string
	User   string
}

type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	systemPath, userPath, err := resolvePromptFiles(id)
	if err != nil {
		return nil, err
	}
	user, err := readEmbeddedText(userPath)
	if err != nil {
		return nil, err
	}

	msgs := make([]schema.MessagesTemplate, 0, 2)
	if systemPath != "" {
		system, err := readEmbeddedText(systemPath)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, schema.SystemMessage(system))
	}
	msgs = append(msgs, schema.UserMessage(user))

	tpl := einoprompt.FromMessages(schema.FString, msgs...)
	r.cache[id] = tpl
	return tpl, nil
}

// Render 用 vars 渲染模板并拆分为系统指令与用户提示
func (r *Registry) Render(ctx context.Context, id PromptID, vars map[string]any) (*Rendered, error) {
	tpl, err := r.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to format prompt %s: %w", id, err)
	}

	out := &Rendered{}
	for _, m := range msgs {
		if m == nil {
			continue
		}
		switch m.Role {
		case schema.System:
			out.System = strings.TrimSpace(m.Content)
		case schema.User:
			out.User = strings.TrimSpace(m.Content)
		}
	}
	if out.User == "" {
		return nil, fmt.Errorf("prompt %s rendered an empty user message", id)
	}
	return out, nil
}

// research 阶段没有系统指令
func resolvePromptFiles(id PromptID) (systemFile string, userFile string, err error) {
	switch id {
	case PromptResearchV1:
		return "", "templates/research_v1.user.txt", nil
	case PromptDraftV1:
		return "templates/draft_v1.system.txt", "templates/draft_v1.user.txt", nil
	case PromptRefineV1:
		return "templates/refine_v1.system.txt", "templates/refine_v1.user.txt", nil
	default:
		return "", "", fmt.Errorf("unknown prompt id: %s", id)
	}
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
