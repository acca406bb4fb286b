package overpass

import (
	"fmt"
	"strings"

	"github.com/funmap-service/internal/config"
	"github.com/funmap-service/internal/domain"
	"github.com/funmap-service/internal/pkg/errors"
)

// QueryBuilder собирает текст Overpass QL запроса: объединение выбранных
// административных границ в одну область поиска и OR-дизъюнкция правил
// фильтрации внутри неё. Сборка чистая, без побочных эффектов.
type QueryBuilder struct {
	regions []int64
	rules   []domain.FilterRule
	timeout int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{timeout: 180}
}

// Regions задаёт идентификаторы boundary relation. Порядок сохраняется
// в тексте запроса ради детерминизма, на результат он не влияет:
// все регионы сливаются в одну область до применения фильтров.
func (b *QueryBuilder) Regions(ids ...int64) *QueryBuilder {
	b.regions = append(b.regions, ids...)
	return b
}

// Rules добавляет правила фильтрации по тегам
func (b *QueryBuilder) Rules(rules ...domain.FilterRule) *QueryBuilder {
	b.rules = append(b.rules, rules...)
	return b
}

// Timeout задаёт серверный лимит выполнения в секундах
func (b *QueryBuilder) Timeout(seconds int) *QueryBuilder {
	b.timeout = seconds
	return b
}

// Build валидирует конфигурацию и возвращает готовый текст запроса.
// Построение детерминировано: одинаковые входы дают байт-в-байт
// одинаковый текст.
func (b *QueryBuilder) Build() (string, error) {
	if err := b.validate(); err != nil {
		return "", err
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "[out:json][timeout:%d];\n", b.timeout)

	// Все регионы сливаются в одну область поиска до применения фильтров,
	// поэтому объект в пересечении двух регионов попадает в результат один раз
	ids := make([]string, len(b.regions))
	for i, id := range b.regions {
		ids[i] = fmt.Sprintf("%d", id)
	}
	fmt.Fprintf(&sb, "rel(id:%s);\n", strings.Join(ids, ","))
	sb.WriteString("map_to_area->.searchArea;\n")

	sb.WriteString("(\n")
	for _, rule := range b.rules {
		fmt.Fprintf(&sb, "  nwr[%s](area.searchArea);\n", renderRule(rule))
	}
	sb.WriteString(");\n")

	// "out center;" отдаёт для way/relation представительную точку,
	// чтобы потребители обрабатывали все типы геометрии одинаково
	sb.WriteString("out center;\n")

	return sb.String(), nil
}

func (b *QueryBuilder) validate() error {
	if len(b.regions) == 0 {
		return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
			"reason": "region list is empty",
		})
	}
	for _, id := range b.regions {
		if id <= 0 {
			return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
				"reason":    "region id must be positive",
				"region_id": id,
			})
		}
	}
	if len(b.rules) == 0 {
		return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
			"reason": "filter rule list is empty",
		})
	}
	for i, rule := range b.rules {
		if rule.Key == "" || len(rule.Values) == 0 {
			return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
				"reason":     "filter rule needs a key and at least one value",
				"rule_index": i,
			})
		}
		if !isPlainToken(rule.Key) {
			return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
				"reason": "filter rule key contains unsupported characters",
				"key":    rule.Key,
			})
		}
		for _, v := range rule.Values {
			if !isPlainToken(v) {
				return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
					"reason": "filter rule value contains unsupported characters",
					"key":    rule.Key,
					"value":  v,
				})
			}
		}
		switch rule.Kind {
		case domain.MatchExact, domain.MatchAnyOf, domain.MatchPrefix:
		default:
			return errors.ErrInvalidConfiguration.WithDetails(map[string]interface{}{
				"reason": "unknown match kind",
				"kind":   string(rule.Kind),
			})
		}
	}
	return nil
}

// renderRule переводит правило в предикат Overpass QL.
// MatchAnyOf якорит альтернацию с обеих сторон: "train" не совпадёт
// с "trains". MatchPrefix оставляет хвост открытым, допуская
// суффиксы-варианты вида climbing_adventure.
func renderRule(rule domain.FilterRule) string {
	switch rule.Kind {
	case domain.MatchExact:
		return fmt.Sprintf("%q=%q", rule.Key, rule.Values[0])
	case domain.MatchAnyOf:
		return fmt.Sprintf("%q~\"^(%s)$\"", rule.Key, strings.Join(rule.Values, "|"))
	default: // domain.MatchPrefix
		return fmt.Sprintf("%q~\"^(%s)\"", rule.Key, strings.Join(rule.Values, "|"))
	}
}

// isPlainToken отсекает значения с метасимволами regex, чтобы
// альтернация не превратилась в произвольное регулярное выражение
func isPlainToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == ':' || r == '-':
		default:
			return false
		}
	}
	return true
}

// RulesFromConfig собирает правила фильтрации из конфигурации.
// Tourism сравнивается точно, leisure и attraction через полную
// альтернацию, sport по префиксу.
func RulesFromConfig(cfg *config.QueryConfig) []domain.FilterRule {
	return []domain.FilterRule{
		{Key: "tourism", Kind: domain.MatchExact, Values: []string{cfg.TourismValue}},
		{Key: "leisure", Kind: domain.MatchAnyOf, Values: cfg.LeisureValues},
		{Key: "attraction", Kind: domain.MatchAnyOf, Values: cfg.AttractionValues},
		{Key: "sport", Kind: domain.MatchPrefix, Values: cfg.SportValuePrefixes},
	}
}
