package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ==================== QueryEnhancer 查询增强 ====================

// EnhancedQuery AI 返回的结构化查询
type EnhancedQuery struct {
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	PriceIntent string   `json:"price_intent"` // budget / mid-range / premium
	Attributes  []string `json:"attributes"`
}

// QueryEnhancer 文本增强能力抽象
// 测试中可替换为本地实现，搜索分支逻辑无需真实调用
type QueryEnhancer interface {
	Enhance(ctx context.Context, query string) (*EnhancedQuery, error)
	Suggest(ctx context.Context, query string, contextTitles []string) ([]string, error)
}

// ==================== Gemini 实现 ====================

// GeminiConfig Gemini 配置
type GeminiConfig struct {
	ApiKey       string
	ModelVersion string
}

// GeminiEnhancer 基于 Gemini 的查询增强实现
type GeminiEnhancer struct {
	config *GeminiConfig
}

// NewGeminiEnhancer 创建 Gemini 增强器
func NewGeminiEnhancer(cfg *GeminiConfig) *GeminiEnhancer {
	if cfg.ModelVersion == "" {
		cfg.ModelVersion = "gemini-2.5-flash"
	}
	return &GeminiEnhancer{config: cfg}
}

// Enhance 将自由文本查询扩展为结构化过滤条件
func (g *GeminiEnhancer) Enhance(ctx context.Context, query string) (*EnhancedQuery, error) {
	prompt := fmt.Sprintf(`You are a search assistant for an online marketplace.
Expand the following shopping query into structured filters: "%s".

Rules:
1. keywords: 3-8 search keywords derived from the query.
2. category: single best-fit product category in lowercase, empty string if unclear.
3. price_intent: one of "budget", "mid-range", "premium", or empty string.
4. attributes: notable product attributes mentioned (color, material, size...).

Output Schema (JSON):
{
  "keywords": ["string"],
  "category": "string",
  "price_intent": "string",
  "attributes": ["string"]
}`, query)

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result EnhancedQuery
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: AI 响应解析失败: %v | 原始数据: %s", ErrGateway, err, raw)
	}
	return &result, nil
}

// Suggest 基于查询与在售商品上下文生成搜索建议
func (g *GeminiEnhancer) Suggest(ctx context.Context, query string, contextTitles []string) ([]string, error) {
	prompt := fmt.Sprintf(`You are a search autocomplete engine for an online marketplace.
User is typing: "%s"

Products currently available (for context):
%s

Generate up to 8 short search suggestions the user is likely completing.
Output Schema (JSON):
{
  "suggestions": ["string"]
}`, query, strings.Join(contextTitles, "\n"))

	raw, err := g.generateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("%w: AI 响应解析失败: %v", ErrGateway, err)
	}
	return result.Suggestions, nil
}

// generateJSON 发起一次 JSON 模式生成
func (g *GeminiEnhancer) generateJSON(ctx context.Context, prompt string) (string, error) {
	if g.config.ApiKey == "" {
		return "", fmt.Errorf("%w: Gemini API Key 未配置", ErrGateway)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.config.ApiKey))
	if err != nil {
		return "", fmt.Errorf("%w: Gemini 初始化失败: %v", ErrGateway, err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(g.config.ModelVersion)
	modelAI.ResponseMIMEType = "application/json"

	resp, err := modelAI.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: AI 生成失败: %v", ErrGateway, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: AI 返回为空", ErrGateway)
	}

	var rawJSON string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			rawJSON = string(txt)
			break
		}
	}

	// 清洗可能存在的 markdown 符号 (```json ... ```)
	rawJSON = strings.TrimSpace(rawJSON)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimPrefix(rawJSON, "```")
	rawJSON = strings.TrimSuffix(rawJSON, "```")

	return rawJSON, nil
}
