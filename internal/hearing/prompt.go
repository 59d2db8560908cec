package hearing

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// SystemPrompt is the fixed interview instruction sent with every
// completion request. It fully determines the conversational behavior;
// the application keeps no state machine of its own.
const SystemPrompt = `あなたは株式会社Elefantのヒアリング担当AIアシスタントです。
クライアントに対して親しみやすく、プロフェッショナルな態度で接してください。

【ヒアリングの目的】
クライアントのAI活用ニーズと業務課題を理解し、最適なソリューションを提案するための情報収集。

【収集すべき情報】
1. 名前と現在の職業（具体的にどのような業務をしているか）
2. AIをどのように使いたいか（期待していること）
3. 業務で具体的に困っていること（課題・ペイン）

【ヒアリングのルール】
- 一度に複数の質問をしない（1つずつ丁寧に聞く）
- 相手の回答を深掘りする（「具体的には？」「例えば？」）
- 共感を示しながら進める
- 専門用語は避け、わかりやすい言葉を使う
- 回答が曖昧な場合は、優しく具体例を求める

【会話の流れ】
1. 挨拶と自己紹介
2. 名前と職業を聞く
3. AI活用への期待を聞く
4. 業務上の課題を深掘りする
5. 最後に要約と感謝

最初のメッセージでは、明るく挨拶し、まずお名前と現在のお仕事について聞いてください。`

// PromptSource provides the current system prompt. The built-in prompt
// can be overridden from a file so the interview script can be tuned
// without a redeploy; an empty or missing override falls back to the
// built-in text.
type PromptSource struct {
	mu       sync.RWMutex
	override string
}

// NewPromptSource returns a source serving the built-in prompt.
func NewPromptSource() *PromptSource {
	return &PromptSource{}
}

// Current returns the active system prompt.
func (s *PromptSource) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.override != "" {
		return s.override
	}
	return SystemPrompt
}

// SetOverride replaces the built-in prompt. Whitespace-only text clears
// the override instead.
func (s *PromptSource) SetOverride(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = strings.TrimSpace(text)
}

// Reset restores the built-in prompt.
func (s *PromptSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = ""
}

// LoadFile reads an override file into the source.
func (s *PromptSource) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read prompt file: %w", err)
	}

	s.SetOverride(string(data))
	return nil
}
