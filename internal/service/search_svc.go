package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tradefair/internal/repository"
	"tradefair/pkg/logger"
)

// ==================== 价格区间 ====================

// PriceRange 价格区间（最小货币单位）
// Max 为 nil 表示无上限
type PriceRange struct {
	Min int64  `json:"min"`
	Max *int64 `json:"max"`
}

// priceRangeForIntent 价格意图 → 固定三档区间
func priceRangeForIntent(intent string) *PriceRange {
	switch intent {
	case "budget":
		max := int64(10000)
		return &PriceRange{Min: 0, Max: &max}
	case "mid-range":
		max := int64(50000)
		return &PriceRange{Min: 10000, Max: &max}
	case "premium":
		return &PriceRange{Min: 50000, Max: nil}
	default:
		return nil
	}
}

// ==================== SearchService 搜索服务 ====================

// EnhanceResult 查询增强结果
type EnhanceResult struct {
	Keywords       []string    `json:"keywords"`
	Category       string      `json:"category"`
	CategoryExists bool        `json:"categoryExists"`
	PriceRange     *PriceRange `json:"priceRange"`
	Attributes     []string    `json:"attributes"`
}

// SearchService 搜索增强
type SearchService struct {
	listings repository.ListingRepository
	enhancer QueryEnhancer
}

// NewSearchService 创建搜索服务
func NewSearchService(listings repository.ListingRepository, enhancer QueryEnhancer) *SearchService {
	return &SearchService{
		listings: listings,
		enhancer: enhancer,
	}
}

// Enhance 自由文本查询 → 结构化过滤条件
func (s *SearchService) Enhance(ctx context.Context, query string) (*EnhanceResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: 查询不能为空", ErrValidation)
	}

	enhanced, err := s.enhancer.Enhance(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &EnhanceResult{
		Keywords:   enhanced.Keywords,
		Category:   enhanced.Category,
		PriceRange: priceRangeForIntent(enhanced.PriceIntent),
		Attributes: enhanced.Attributes,
	}

	// 建议分类是否真的有在售商品，单独回查
	if enhanced.Category != "" {
		exists, err := s.listings.CategoryExists(ctx, enhanced.Category)
		if err != nil {
			return nil, fmt.Errorf("查询分类失败: %w", err)
		}
		result.CategoryExists = exists
	}

	return result, nil
}

// Suggestions 搜索联想
// ≤2 个字符直接返回空列表且不调用 AI；
// AI 失败时降级为仅返回直接标题匹配
func (s *SearchService) Suggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) <= 2 {
		return []string{}, nil
	}

	// 取最多 20 个匹配的在售商品作为 AI 上下文
	matches, err := s.listings.SearchActive(ctx, query, 20)
	if err != nil {
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	titles := make([]string, len(matches))
	for i, l := range matches {
		titles[i] = l.Title
	}

	// 直接标题匹配最多取 3 个
	lowered := strings.ToLower(query)
	var direct []string
	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), lowered) {
			direct = append(direct, title)
			if len(direct) == 3 {
				break
			}
		}
	}

	aiSuggestions, err := s.enhancer.Suggest(ctx, query, titles)
	if err != nil {
		logger.L.Warn("AI 搜索建议失败，降级为直接匹配",
			zap.String("query", query),
			zap.Error(err))
		aiSuggestions = nil
	}

	// 合并去重（大小写不敏感），上限 8 条
	merged := make([]string, 0, 8)
	seen := make(map[string]struct{})
	for _, candidate := range append(direct, aiSuggestions...) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		key := strings.ToLower(candidate)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, candidate)
		if len(merged) == 8 {
			break
		}
	}

	return merged, nil
}
