// README: Market service; renders bilingual price summaries for the resolver.
package market

import (
	"context"
	"fmt"

	"petree/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) PriceStats(ctx context.Context, species string) (*PriceStats, error) {
	return s.store.PriceStats(ctx, species)
}

// Summary renders a user-facing price summary in the requested language.
// An empty market is a valid answer, not an error.
func (s *Service) Summary(ctx context.Context, species string, lang types.Lang) (string, error) {
	st, err := s.store.PriceStats(ctx, species)
	if err != nil {
		return "", err
	}
	return RenderSummary(st, lang), nil
}

// RenderSummary is the pure formatting half of Summary; exported for tests.
func RenderSummary(st *PriceStats, lang types.Lang) string {
	if st.Listings == 0 {
		if lang == types.LangTH {
			return "ตอนนี้ยังไม่มีประกาศขายในตลาดค่ะ"
		}
		return "There are no active listings on the market right now."
	}
	if lang == types.LangTH {
		return fmt.Sprintf("ตอนนี้มีประกาศขาย %d รายการ ราคาเฉลี่ย %s บาท (ต่ำสุด %s สูงสุด %s)",
			st.Listings, formatTHB(st.AvgTHB), formatTHB(st.MinTHB), formatTHB(st.MaxTHB))
	}
	return fmt.Sprintf("There are %d active listings. Average price is %s THB (min %s, max %s).",
		st.Listings, formatTHB(st.AvgTHB), formatTHB(st.MinTHB), formatTHB(st.MaxTHB))
}

// formatTHB groups thousands with commas (8500 -> "8,500").
func formatTHB(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%d", v)
	n := len(digits)
	if n <= 3 {
		if neg {
			return "-" + digits
		}
		return digits
	}
	out := make([]byte, 0, n+n/3)
	lead := n % 3
	if lead > 0 {
		out = append(out, digits[:lead]...)
	}
	for i := lead; i < n; i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
