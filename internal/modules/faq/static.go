// README: Compiled-in FAQ table; first matching entry wins.
package faq

import (
	"petree/internal/textmatch"
	"petree/internal/types"
)

// StaticEntry is a compiled-in keyword->answer rule.
type StaticEntry struct {
	Keywords []string
	Exclude  []string
	Scope    Scope
	AnswerTH string
	AnswerEN string
}

func (e *StaticEntry) answer(lang types.Lang) string {
	if lang == types.LangTH && e.AnswerTH != "" {
		return e.AnswerTH
	}
	return e.AnswerEN
}

// staticTable is evaluated in order; keep broader rules below narrower ones.
var staticTable = []StaticEntry{
	{
		Keywords: []string{"gestation", "pregnant", "pregnancy", "ตั้งท้อง", "ตั้งครรภ์", "ท้องกี่วัน"},
		Scope:    ScopeAny,
		AnswerEN: "Dogs are pregnant for about 63 days (9 weeks) and cats for about 64-67 days. Count from the first mating date and plan a vet check around week 4.",
		AnswerTH: "สุนัขตั้งท้องประมาณ 63 วัน (9 สัปดาห์) ส่วนแมวประมาณ 64-67 วัน นับจากวันผสมวันแรก และควรพาไปตรวจกับสัตวแพทย์ช่วงสัปดาห์ที่ 4 ค่ะ",
	},
	{
		Keywords: []string{"what is a pedigree", "pedigree mean", "พันธุ์ประวัติคืออะไร", "เพดดีกรีคือ"},
		Scope:    ScopeAny,
		AnswerEN: "A pedigree is your pet's recorded family tree: parents, grandparents and further back, with registration numbers. It proves lineage and helps avoid inbreeding when planning a match.",
		AnswerTH: "เพดดีกรีคือบันทึกต้นตระกูลของสัตว์เลี้ยง ไล่จากพ่อแม่ ปู่ย่าตายาย พร้อมเลขทะเบียน ใช้ยืนยันสายเลือดและช่วยเลี่ยงการผสมเลือดชิดค่ะ",
	},
	{
		Keywords: []string{"how to register", "register steps", "วิธีลงทะเบียน", "ขั้นตอนลงทะเบียน"},
		Scope:    ScopeAny,
		AnswerEN: "To register a pet: open Register from the menu, fill in name, breed, birth date and parents if known, attach a photo, and submit. A registration number is issued after review.",
		AnswerTH: "การลงทะเบียนสัตว์เลี้ยง: เปิดเมนูลงทะเบียน กรอกชื่อ สายพันธุ์ วันเกิด และพ่อแม่ถ้าทราบ แนบรูปแล้วกดส่ง เมื่อตรวจสอบแล้วจะได้รับเลขทะเบียนค่ะ",
	},
	{
		Keywords: []string{"how to sell", "list for sale", "ลงขาย", "ประกาศขาย", "วิธีขาย"},
		Exclude:  []string{"cancel"},
		Scope:    ScopeAny,
		AnswerEN: "To list a pet for sale, open its profile, choose Sell, set a price and confirm. The listing appears on the marketplace right away and can be withdrawn any time.",
		AnswerTH: "การลงขาย: เปิดโปรไฟล์สัตว์เลี้ยง เลือกเมนูขาย ตั้งราคาแล้วยืนยัน ประกาศจะขึ้นตลาดทันทีและถอนออกได้ตลอดค่ะ",
	},
	{
		Keywords: []string{"inbreeding", "inbred", "เลือดชิด", "ผสมเครือญาติ"},
		Scope:    ScopeAny,
		AnswerEN: "Inbreeding (mating close relatives) raises the risk of inherited disorders. The breeding checker flags pairs that share a parent; prefer partners with no common ancestors within two generations.",
		AnswerTH: "การผสมเลือดชิด (ผสมเครือญาติใกล้ชิด) เพิ่มความเสี่ยงโรคทางพันธุกรรม ระบบตรวจคู่ผสมจะเตือนเมื่อพ่อหรือแม่ร่วมกัน ควรเลือกคู่ที่ไม่มีบรรพบุรุษร่วมภายในสองรุ่นค่ะ",
	},
	{
		Keywords: []string{"vaccine", "vaccination", "วัคซีน", "ฉีดยา"},
		Scope:    ScopeAny,
		AnswerEN: "Core vaccines start at 6-8 weeks with boosters every 3-4 weeks until 16 weeks, then yearly. Keep the vaccine book updated; buyers will ask for it.",
		AnswerTH: "วัคซีนหลักเริ่มตอนอายุ 6-8 สัปดาห์ กระตุ้นทุก 3-4 สัปดาห์จนถึง 16 สัปดาห์ จากนั้นปีละครั้ง อย่าลืมอัปเดตสมุดวัคซีน ผู้ซื้อมักขอดูค่ะ",
	},
	{
		Keywords: []string{"what can you do", "help me", "ทำอะไรได้บ้าง", "ช่วยอะไรได้"},
		Scope:    ScopeGlobal,
		AnswerEN: "I can look up registered pets, show pedigrees and siblings, summarise market prices, check breeding pairs for inbreeding risk, and walk you through registration. Try \"find Apollo\" or \"market price\".",
		AnswerTH: "ฉันช่วยค้นหาสัตว์เลี้ยงที่ลงทะเบียน ดูเพดดีกรีและพี่น้อง สรุปราคาตลาด ตรวจคู่ผสมพันธุ์ และแนะนำขั้นตอนลงทะเบียนได้ค่ะ ลองพิมพ์ \"หา Apollo\" หรือ \"ราคาตลาด\" ดูนะคะ",
	},
}

// StaticAnswer walks the static table in order and returns the first
// allowed match, or "" when nothing matches.
func StaticAnswer(text string, lang types.Lang, hasPetContext bool) string {
	for i := range staticTable {
		e := &staticTable[i]
		if e.Scope == ScopeGlobal && hasPetContext {
			continue
		}
		if e.Scope == ScopePet && !hasPetContext {
			continue
		}
		if textmatch.MatchesAny(text, e.Exclude) {
			continue
		}
		if textmatch.MatchesAny(text, e.Keywords) {
			return e.answer(lang)
		}
	}
	return ""
}
