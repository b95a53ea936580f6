// README: Curated bilingual keyword lists, one per intent.
//
// Classification is lexical by design: each classifier is a pure function
// over (text, list), which keeps routing deterministic and each list
// unit-testable. Thai single tokens match by raw substring (Thai has no
// whitespace word boundaries), so partial-word overlaps are possible there.
package resolver

var greetingKeywords = []string{
	"hi", "hello", "hey", "yo", "good morning", "good afternoon", "good evening",
	"สวัสดี", "หวัดดี", "ดีจ้า", "ดีครับ", "ดีค่ะ", "ทักทาย",
}

var smallTalkKeywords = []string{
	"ok", "okay", "thanks", "thank you", "thx", "cool", "nice", "great",
	"lol", "haha", "hehe", "how are you", "nice weather", "good night", "bye",
	"โอเค", "ขอบคุณ", "ขอบใจ", "เยี่ยม", "ดีมาก", "สบายดีไหม", "อากาศดี",
	"ฝนตก", "ร้อนจัง", "บาย", "ราตรีสวัสดิ์", "จ้า", "ครับผม",
}

var affirmativeKeywords = []string{
	"yes", "yeah", "yep", "sure", "ok", "okay", "confirm", "go ahead", "do it",
	"ใช่", "ตกลง", "เอาเลย", "ได้เลย", "โอเค", "ยืนยัน", "จัดไป",
}

var negativeKeywords = []string{
	"no", "nope", "nah", "cancel", "not now", "skip",
	"ไม่", "ไม่เอา", "ไม่ใช่", "ยกเลิก", "ไว้ก่อน", "ข้าม",
}

var clearContextKeywords = []string{
	"clear", "reset", "start over", "new search", "forget it", "never mind",
	"เริ่มใหม่", "ล้างข้อมูล", "เคลียร์", "ลืมไปก่อน", "เปลี่ยนตัวใหม่",
}

var registerVerbKeywords = []string{
	"register", "sign up", "add", "create", "enroll",
	"ลงทะเบียน", "จดทะเบียน", "เพิ่ม", "สมัคร", "ขึ้นทะเบียน",
}

var petTargetKeywords = []string{
	"pet", "dog", "puppy", "cat", "kitten", "my new", "my",
	"สัตว์เลี้ยง", "หมา", "สุนัข", "แมว", "ลูกหมา", "ลูกสุนัข", "ลูกแมว",
	"น้องหมา", "น้องแมว", "ของฉัน", "ของผม", "ตัวใหม่",
}

var regNumberHintKeywords = []string{
	"registration number", "reg number", "reg no", "registration no",
	"เลขทะเบียน", "หมายเลขทะเบียน", "เบอร์ทะเบียน",
}

var marketKeywords = []string{
	"market price", "market", "price", "pricing", "how much", "average price", "cost",
	"ราคาตลาด", "ราคา", "ตลาด", "เท่าไหร่", "เท่าไร", "กี่บาท",
}

var forSaleKeywords = []string{
	"for sale", "buy a", "puppies for sale", "kittens for sale", "looking to buy",
	"available puppies", "available kittens", "any puppies", "any kittens",
	"ขายลูกหมา", "ขายลูกสุนัข", "ขายลูกแมว", "หาซื้อ", "อยากซื้อ", "มีขายไหม", "ลูกสุนัขขาย",
}

var kittenKeywords = []string{
	"kitten", "kittens", "cat", "cats", "ลูกแมว", "แมว",
}

var matchSummaryKeywords = []string{
	"my matches", "breeding matches", "breeding match", "match summary",
	"breeding requests", "breeding schedule", "mating schedule",
	"นัดผสม", "คู่ผสม", "คู่ผสมพันธุ์", "นัดผสมพันธุ์", "สรุปการจับคู่",
}

var searchVerbKeywords = []string{
	"find", "search", "show", "lookup", "look up", "look for", "where is", "who is",
	"หา", "ค้นหา", "ขอดู", "ดูข้อมูล", "อยู่ไหน", "ใครคือ",
}

var relationKeywords = []string{
	"father", "mother", "parents", "pedigree", "family tree", "family",
	"sibling", "siblings", "brother", "sister", "offspring", "children", "lineage",
	"พ่อ", "แม่", "พ่อแม่", "พี่น้อง", "ลูกของ", "ตระกูล", "เพดดีกรี",
	"สายเลือด", "สายพันธุ์ของ", "ครอบครัว",
}

var breedingVerbKeywords = []string{
	"breed", "mate", "pair", "match with",
	"ผสม", "ผสมพันธุ์", "จับคู่", "พ่อพันธุ์", "แม่พันธุ์",
}

// nuanceKeywords gate the pet-scoped LLM call: questions carrying these tend
// to need judgement rather than a field lookup.
var nuanceKeywords = []string{
	"health", "healthy", "genetic", "genetics", "diet", "food", "feed", "train",
	"training", "behavior", "behaviour", "temperament", "plan", "recommend",
	"should", "why", "advice", "risk", "vaccine", "exercise", "breeding plan",
	"สุขภาพ", "พันธุกรรม", "อาหาร", "ออกกำลัง", "ฝึก", "นิสัย", "แผน",
	"แนะนำ", "ควร", "ทำไม", "เสี่ยง", "วัคซีน", "ดูแล", "เลี้ยงยังไง",
}

// fillerTokens are stripped from an utterance before the remainder is used
// as a search term.
var fillerTokens = []string{
	"find", "search", "show", "lookup", "look", "for", "me", "my", "the", "a", "an",
	"please", "info", "information", "about", "pet", "dog", "cat", "of", "is",
	"where", "who", "what", "now",
	"หา", "ค้นหา", "ขอดู", "ดูข้อมูล", "ข้อมูล", "ขอ", "ช่วย", "หน่อย", "ให้",
	"ครับ", "ค่ะ", "คะ", "นะ", "ด้วย", "เกี่ยวกับ", "ตัว", "น้อง",
}

// intentTokens mark an utterance as a command rather than a bare pet name.
var intentTokens = []string{
	"find", "search", "show", "register", "buy", "sell", "price", "market",
	"help", "how", "what", "when", "where", "why", "who", "please", "can",
	"want", "need", "open", "list", "number", "registration", "breed", "match",
	"หา", "ค้นหา", "ลงทะเบียน", "ซื้อ", "ขาย", "ราคา", "ช่วย", "อย่างไร",
	"ยังไง", "อะไร", "เมื่อไหร่", "ที่ไหน", "ทำไม", "ใคร", "อยาก", "ต้องการ",
	"เปิด", "ทะเบียน", "ผสม", "จับคู่", "เท่าไหร่",
}

// Topic keywords for the context-aware shortcut and the pet-scoped table.
var (
	topicFamilyKeywords = []string{
		"pedigree", "family tree", "family", "ancestry", "parents",
		"เพดดีกรี", "ตระกูล", "พ่อแม่", "สายเลือด", "ครอบครัว",
	}
	topicDocumentKeywords = []string{
		"document", "documents", "papers", "certificate", "certificates",
		"เอกสาร", "ใบรับรอง", "ใบเพ็ด", "สมุดวัคซีน",
	}
	topicSaleKeywords = []string{
		"sale status", "for sale", "selling", "listed", "price",
		"สถานะขาย", "ขายอยู่ไหม", "ราคา", "ประกาศขาย",
	}
	topicOwnerKeywords = []string{
		"owner", "breeder", "contact",
		"เจ้าของ", "ผู้เพาะพันธุ์", "ติดต่อ",
	}
	topicRegNumberKeywords = regNumberHintKeywords
)

// Pet-scoped local intents beyond the shortcut topics.
var (
	siblingKeywords = []string{
		"sibling", "siblings", "brother", "sister", "littermate", "littermates",
		"พี่น้อง", "ครอกเดียวกัน",
	}
	summaryKeywords = []string{
		"summary", "profile", "overview", "details", "about",
		"สรุป", "โปรไฟล์", "ภาพรวม", "รายละเอียด",
	}
	locationKeywords = []string{
		"location", "where", "province", "city",
		"อยู่ไหน", "ที่ไหน", "จังหวัด", "ที่อยู่",
	}
	geneticsKeywords = []string{
		"genetics", "genetic", "color gene", "coat color", "bloodline",
		"พันธุกรรม", "ยีน", "สีขน", "สายเลือด",
	}
	birthdayKeywords = []string{
		"birthday", "birth date", "born", "age", "how old",
		"วันเกิด", "อายุ", "เกิดเมื่อไหร่", "กี่ขวบ", "กี่ปี",
	}
	shareKeywords = []string{
		"share", "share link", "link",
		"แชร์", "ลิงก์", "ส่งต่อ",
	}
	offspringKeywords = []string{
		"offspring", "children", "puppies of", "kittens of", "litters",
		"ลูกของ", "ลูกๆ", "ครอก",
	}
)
