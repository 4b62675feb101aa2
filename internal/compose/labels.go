package compose

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/alnah/go-docpdf/internal/script"
)

// Labels are the fixed strings drawn on documents.
type Labels struct {
	Invoice       string
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	From          string
	BillTo        string
	Description   string
	Quantity      string
	Rate          string
	Amount        string
	Subtotal      string
	Tax           string
	Total         string
	Notes         string
	Terms         string
	NoItems       string

	NDA             string
	EffectiveDate   string
	TerminationDate string
	Term            string
	Disclosing      string
	Receiving       string
	Mutual          string
	Purpose         string
	Clauses         string
	GoverningLaw    string
	Signatures      string
	Signature       string
	Name            string
	Date            string

	NotSpecified string
	Draft        string
	Confidential string

	printer *message.Printer
}

// Months renders a term length.
func (l Labels) Months(n int) string {
	p := l.printer
	if p == nil {
		p = message.NewPrinter(language.English, message.Catalog(labelCatalog))
	}
	return p.Sprintf(msgTermMonths, strconv.Itoa(n))
}

// Message IDs are the English labels, so a message missing from a
// language prints in English.
const (
	msgInvoice         = "Invoice"
	msgInvoiceNumber   = "Invoice No."
	msgIssueDate       = "Issue Date"
	msgDueDate         = "Due Date"
	msgFrom            = "From"
	msgBillTo          = "Bill To"
	msgDescription     = "Description"
	msgQuantity        = "Qty"
	msgRate            = "Rate"
	msgAmount          = "Amount"
	msgSubtotal        = "Subtotal"
	msgTax             = "Tax"
	msgTotal           = "Total"
	msgNotes           = "Notes"
	msgTerms           = "Terms"
	msgNoItems         = "No items"
	msgNDA             = "Non-Disclosure Agreement"
	msgEffectiveDate   = "Effective Date"
	msgTerminationDate = "Termination Date"
	msgTerm            = "Term"
	msgTermMonths      = "%s months"
	msgDisclosing      = "Disclosing Party"
	msgReceiving       = "Receiving Party"
	msgMutual          = "Mutual agreement"
	msgPurpose         = "Purpose"
	msgClauses         = "Terms and Conditions"
	msgGoverningLaw    = "Governing Law"
	msgSignatures      = "Signatures"
	msgSignature       = "Signature"
	msgName            = "Name"
	msgDate            = "Date"
	msgNotSpecified    = "Not specified"
	msgDraft           = "DRAFT"
	msgConfidential    = "CONFIDENTIAL"
)

// labelLanguages are the languages with translations. English comes first
// so that the matcher falls back to it.
var labelLanguages = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Portuguese,
	language.Italian,
	language.Arabic,
	language.SimplifiedChinese,
	language.TraditionalChinese,
	language.Japanese,
	language.Korean,
}

// translations maps message IDs to their text in each language but
// English.
var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		msgInvoice:         "Factura",
		msgInvoiceNumber:   "Nº de factura",
		msgIssueDate:       "Fecha de emisión",
		msgDueDate:         "Fecha de vencimiento",
		msgFrom:            "De",
		msgBillTo:          "Facturar a",
		msgDescription:     "Descripción",
		msgQuantity:        "Cant.",
		msgRate:            "Tarifa",
		msgAmount:          "Importe",
		msgSubtotal:        "Subtotal",
		msgTax:             "Impuesto",
		msgTotal:           "Total",
		msgNotes:           "Notas",
		msgTerms:           "Condiciones",
		msgNoItems:         "Sin conceptos",
		msgNDA:             "Acuerdo de confidencialidad",
		msgEffectiveDate:   "Fecha de entrada en vigor",
		msgTerminationDate: "Fecha de terminación",
		msgTerm:            "Duración",
		msgTermMonths:      "%s meses",
		msgDisclosing:      "Parte divulgadora",
		msgReceiving:       "Parte receptora",
		msgMutual:          "Acuerdo mutuo",
		msgPurpose:         "Finalidad",
		msgClauses:         "Términos y condiciones",
		msgGoverningLaw:    "Legislación aplicable",
		msgSignatures:      "Firmas",
		msgSignature:       "Firma",
		msgName:            "Nombre",
		msgDate:            "Fecha",
		msgNotSpecified:    "No especificado",
		msgDraft:           "BORRADOR",
		msgConfidential:    "CONFIDENCIAL",
	},
	language.French: {
		msgInvoice:         "Facture",
		msgInvoiceNumber:   "N° de facture",
		msgIssueDate:       "Date d'émission",
		msgDueDate:         "Date d'échéance",
		msgFrom:            "De",
		msgBillTo:          "Facturer à",
		msgDescription:     "Description",
		msgQuantity:        "Qté",
		msgRate:            "Tarif",
		msgAmount:          "Montant",
		msgSubtotal:        "Sous-total",
		msgTax:             "Taxe",
		msgTotal:           "Total",
		msgNotes:           "Notes",
		msgTerms:           "Conditions",
		msgNoItems:         "Aucun article",
		msgNDA:             "Accord de confidentialité",
		msgEffectiveDate:   "Date d'entrée en vigueur",
		msgTerminationDate: "Date de résiliation",
		msgTerm:            "Durée",
		msgTermMonths:      "%s mois",
		msgDisclosing:      "Partie divulgatrice",
		msgReceiving:       "Partie réceptrice",
		msgMutual:          "Accord mutuel",
		msgPurpose:         "Objet",
		msgClauses:         "Conditions générales",
		msgGoverningLaw:    "Droit applicable",
		msgSignatures:      "Signatures",
		msgSignature:       "Signature",
		msgName:            "Nom",
		msgDate:            "Date",
		msgNotSpecified:    "Non spécifié",
		msgDraft:           "BROUILLON",
		msgConfidential:    "CONFIDENTIEL",
	},
	language.German: {
		msgInvoice:         "Rechnung",
		msgInvoiceNumber:   "Rechnungsnr.",
		msgIssueDate:       "Rechnungsdatum",
		msgDueDate:         "Fälligkeitsdatum",
		msgFrom:            "Von",
		msgBillTo:          "Rechnung an",
		msgDescription:     "Beschreibung",
		msgQuantity:        "Menge",
		msgRate:            "Preis",
		msgAmount:          "Betrag",
		msgSubtotal:        "Zwischensumme",
		msgTax:             "Steuer",
		msgTotal:           "Gesamt",
		msgNotes:           "Hinweise",
		msgTerms:           "Bedingungen",
		msgNoItems:         "Keine Positionen",
		msgNDA:             "Geheimhaltungsvereinbarung",
		msgEffectiveDate:   "Inkrafttreten",
		msgTerminationDate: "Beendigungsdatum",
		msgTerm:            "Laufzeit",
		msgTermMonths:      "%s Monate",
		msgDisclosing:      "Offenlegende Partei",
		msgReceiving:       "Empfangende Partei",
		msgMutual:          "Gegenseitige Vereinbarung",
		msgPurpose:         "Zweck",
		msgClauses:         "Allgemeine Bestimmungen",
		msgGoverningLaw:    "Anwendbares Recht",
		msgSignatures:      "Unterschriften",
		msgSignature:       "Unterschrift",
		msgName:            "Name",
		msgDate:            "Datum",
		msgNotSpecified:    "Nicht angegeben",
		msgDraft:           "ENTWURF",
		msgConfidential:    "VERTRAULICH",
	},
	language.Portuguese: {
		msgInvoice:         "Fatura",
		msgInvoiceNumber:   "Nº da fatura",
		msgIssueDate:       "Data de emissão",
		msgDueDate:         "Data de vencimento",
		msgFrom:            "De",
		msgBillTo:          "Faturar para",
		msgDescription:     "Descrição",
		msgQuantity:        "Qtd.",
		msgRate:            "Valor unitário",
		msgAmount:          "Valor",
		msgSubtotal:        "Subtotal",
		msgTax:             "Imposto",
		msgTotal:           "Total",
		msgNotes:           "Observações",
		msgTerms:           "Condições",
		msgNoItems:         "Nenhum item",
		msgNDA:             "Acordo de confidencialidade",
		msgEffectiveDate:   "Data de vigência",
		msgTerminationDate: "Data de término",
		msgTerm:            "Prazo",
		msgTermMonths:      "%s meses",
		msgDisclosing:      "Parte divulgadora",
		msgReceiving:       "Parte receptora",
		msgMutual:          "Acordo mútuo",
		msgPurpose:         "Finalidade",
		msgClauses:         "Termos e condições",
		msgGoverningLaw:    "Lei aplicável",
		msgSignatures:      "Assinaturas",
		msgSignature:       "Assinatura",
		msgName:            "Nome",
		msgDate:            "Data",
		msgNotSpecified:    "Não especificado",
		msgDraft:           "RASCUNHO",
		msgConfidential:    "CONFIDENCIAL",
	},
	language.Italian: {
		msgInvoice:         "Fattura",
		msgInvoiceNumber:   "N. fattura",
		msgIssueDate:       "Data di emissione",
		msgDueDate:         "Data di scadenza",
		msgFrom:            "Da",
		msgBillTo:          "Intestata a",
		msgDescription:     "Descrizione",
		msgQuantity:        "Q.tà",
		msgRate:            "Tariffa",
		msgAmount:          "Importo",
		msgSubtotal:        "Subtotale",
		msgTax:             "Imposta",
		msgTotal:           "Totale",
		msgNotes:           "Note",
		msgTerms:           "Condizioni",
		msgNoItems:         "Nessuna voce",
		msgNDA:             "Accordo di riservatezza",
		msgEffectiveDate:   "Data di decorrenza",
		msgTerminationDate: "Data di cessazione",
		msgTerm:            "Durata",
		msgTermMonths:      "%s mesi",
		msgDisclosing:      "Parte divulgante",
		msgReceiving:       "Parte ricevente",
		msgMutual:          "Accordo reciproco",
		msgPurpose:         "Finalità",
		msgClauses:         "Termini e condizioni",
		msgGoverningLaw:    "Legge applicabile",
		msgSignatures:      "Firme",
		msgSignature:       "Firma",
		msgName:            "Nome",
		msgDate:            "Data",
		msgNotSpecified:    "Non specificato",
		msgDraft:           "BOZZA",
		msgConfidential:    "RISERVATO",
	},
	language.Arabic: {
		msgInvoice:         "فاتورة",
		msgInvoiceNumber:   "رقم الفاتورة",
		msgIssueDate:       "تاريخ الإصدار",
		msgDueDate:         "تاريخ الاستحقاق",
		msgFrom:            "من",
		msgBillTo:          "فاتورة إلى",
		msgDescription:     "الوصف",
		msgQuantity:        "الكمية",
		msgRate:            "السعر",
		msgAmount:          "المبلغ",
		msgSubtotal:        "المجموع الفرعي",
		msgTax:             "الضريبة",
		msgTotal:           "الإجمالي",
		msgNotes:           "ملاحظات",
		msgTerms:           "الشروط",
		msgNoItems:         "لا توجد بنود",
		msgNDA:             "اتفاقية عدم إفشاء",
		msgEffectiveDate:   "تاريخ السريان",
		msgTerminationDate: "تاريخ الانتهاء",
		msgTerm:            "المدة",
		msgTermMonths:      "%s شهرًا",
		msgDisclosing:      "الطرف المفصح",
		msgReceiving:       "الطرف المتلقي",
		msgMutual:          "اتفاقية متبادلة",
		msgPurpose:         "الغرض",
		msgClauses:         "الشروط والأحكام",
		msgGoverningLaw:    "القانون الحاكم",
		msgSignatures:      "التوقيعات",
		msgSignature:       "التوقيع",
		msgName:            "الاسم",
		msgDate:            "التاريخ",
		msgNotSpecified:    "غير محدد",
		msgDraft:           "مسودة",
		msgConfidential:    "سري",
	},
	language.SimplifiedChinese: {
		msgInvoice:         "发票",
		msgInvoiceNumber:   "发票编号",
		msgIssueDate:       "开票日期",
		msgDueDate:         "到期日期",
		msgFrom:            "开票方",
		msgBillTo:          "收票方",
		msgDescription:     "描述",
		msgQuantity:        "数量",
		msgRate:            "单价",
		msgAmount:          "金额",
		msgSubtotal:        "小计",
		msgTax:             "税额",
		msgTotal:           "总计",
		msgNotes:           "备注",
		msgTerms:           "条款",
		msgNoItems:         "无项目",
		msgNDA:             "保密协议",
		msgEffectiveDate:   "生效日期",
		msgTerminationDate: "终止日期",
		msgTerm:            "期限",
		msgTermMonths:      "%s 个月",
		msgDisclosing:      "披露方",
		msgReceiving:       "接收方",
		msgMutual:          "双向保密协议",
		msgPurpose:         "目的",
		msgClauses:         "条款与条件",
		msgGoverningLaw:    "适用法律",
		msgSignatures:      "签署",
		msgSignature:       "签名",
		msgName:            "姓名",
		msgDate:            "日期",
		msgNotSpecified:    "未指定",
		msgDraft:           "草稿",
		msgConfidential:    "机密",
	},
	language.TraditionalChinese: {
		msgInvoice:         "發票",
		msgInvoiceNumber:   "發票編號",
		msgIssueDate:       "開立日期",
		msgDueDate:         "到期日期",
		msgFrom:            "開票方",
		msgBillTo:          "收票方",
		msgDescription:     "描述",
		msgQuantity:        "數量",
		msgRate:            "單價",
		msgAmount:          "金額",
		msgSubtotal:        "小計",
		msgTax:             "稅額",
		msgTotal:           "總計",
		msgNotes:           "備註",
		msgTerms:           "條款",
		msgNoItems:         "無項目",
		msgNDA:             "保密協議",
		msgEffectiveDate:   "生效日期",
		msgTerminationDate: "終止日期",
		msgTerm:            "期限",
		msgTermMonths:      "%s 個月",
		msgDisclosing:      "揭露方",
		msgReceiving:       "接收方",
		msgMutual:          "雙向保密協議",
		msgPurpose:         "目的",
		msgClauses:         "條款與條件",
		msgGoverningLaw:    "準據法",
		msgSignatures:      "簽署",
		msgSignature:       "簽名",
		msgName:            "姓名",
		msgDate:            "日期",
		msgNotSpecified:    "未指定",
		msgDraft:           "草稿",
		msgConfidential:    "機密",
	},
	language.Japanese: {
		msgInvoice:         "請求書",
		msgInvoiceNumber:   "請求書番号",
		msgIssueDate:       "発行日",
		msgDueDate:         "支払期日",
		msgFrom:            "請求元",
		msgBillTo:          "請求先",
		msgDescription:     "品目",
		msgQuantity:        "数量",
		msgRate:            "単価",
		msgAmount:          "金額",
		msgSubtotal:        "小計",
		msgTax:             "税額",
		msgTotal:           "合計",
		msgNotes:           "備考",
		msgTerms:           "条件",
		msgNoItems:         "項目なし",
		msgNDA:             "秘密保持契約書",
		msgEffectiveDate:   "発効日",
		msgTerminationDate: "終了日",
		msgTerm:            "期間",
		msgTermMonths:      "%s か月",
		msgDisclosing:      "開示者",
		msgReceiving:       "受領者",
		msgMutual:          "相互秘密保持契約",
		msgPurpose:         "目的",
		msgClauses:         "契約条項",
		msgGoverningLaw:    "準拠法",
		msgSignatures:      "署名",
		msgSignature:       "署名",
		msgName:            "氏名",
		msgDate:            "日付",
		msgNotSpecified:    "未指定",
		msgDraft:           "下書き",
		msgConfidential:    "機密",
	},
	language.Korean: {
		msgInvoice:         "청구서",
		msgInvoiceNumber:   "청구서 번호",
		msgIssueDate:       "발행일",
		msgDueDate:         "지급 기한",
		msgFrom:            "발신",
		msgBillTo:          "수신",
		msgDescription:     "설명",
		msgQuantity:        "수량",
		msgRate:            "단가",
		msgAmount:          "금액",
		msgSubtotal:        "소계",
		msgTax:             "세금",
		msgTotal:           "합계",
		msgNotes:           "메모",
		msgTerms:           "조건",
		msgNoItems:         "항목 없음",
		msgNDA:             "비밀유지계약서",
		msgEffectiveDate:   "발효일",
		msgTerminationDate: "종료일",
		msgTerm:            "기간",
		msgTermMonths:      "%s개월",
		msgDisclosing:      "정보 제공자",
		msgReceiving:       "정보 수령자",
		msgMutual:          "상호 비밀유지계약",
		msgPurpose:         "목적",
		msgClauses:         "계약 조건",
		msgGoverningLaw:    "준거법",
		msgSignatures:      "서명",
		msgSignature:       "서명",
		msgName:            "성명",
		msgDate:            "날짜",
		msgNotSpecified:    "지정되지 않음",
		msgDraft:           "초안",
		msgConfidential:    "기밀",
	},
}

var (
	labelCatalog = newLabelCatalog()
	labelMatcher = language.NewMatcher(labelLanguages)
)

func newLabelCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, messages := range translations {
		for id, text := range messages {
			if err := b.SetString(tag, id, text); err != nil {
				panic("compose: label " + id + ": " + err.Error())
			}
		}
	}
	return b
}

// LabelsFor returns the labels for a locale. Languages without a
// translation, and messages a translation lacks, use English.
func LabelsFor(loc string) Labels {
	p := message.NewPrinter(labelTag(loc), message.Catalog(labelCatalog))
	return Labels{
		Invoice:         p.Sprintf(msgInvoice),
		InvoiceNumber:   p.Sprintf(msgInvoiceNumber),
		IssueDate:       p.Sprintf(msgIssueDate),
		DueDate:         p.Sprintf(msgDueDate),
		From:            p.Sprintf(msgFrom),
		BillTo:          p.Sprintf(msgBillTo),
		Description:     p.Sprintf(msgDescription),
		Quantity:        p.Sprintf(msgQuantity),
		Rate:            p.Sprintf(msgRate),
		Amount:          p.Sprintf(msgAmount),
		Subtotal:        p.Sprintf(msgSubtotal),
		Tax:             p.Sprintf(msgTax),
		Total:           p.Sprintf(msgTotal),
		Notes:           p.Sprintf(msgNotes),
		Terms:           p.Sprintf(msgTerms),
		NoItems:         p.Sprintf(msgNoItems),
		NDA:             p.Sprintf(msgNDA),
		EffectiveDate:   p.Sprintf(msgEffectiveDate),
		TerminationDate: p.Sprintf(msgTerminationDate),
		Term:            p.Sprintf(msgTerm),
		Disclosing:      p.Sprintf(msgDisclosing),
		Receiving:       p.Sprintf(msgReceiving),
		Mutual:          p.Sprintf(msgMutual),
		Purpose:         p.Sprintf(msgPurpose),
		Clauses:         p.Sprintf(msgClauses),
		GoverningLaw:    p.Sprintf(msgGoverningLaw),
		Signatures:      p.Sprintf(msgSignatures),
		Signature:       p.Sprintf(msgSignature),
		Name:            p.Sprintf(msgName),
		Date:            p.Sprintf(msgDate),
		NotSpecified:    p.Sprintf(msgNotSpecified),
		Draft:           p.Sprintf(msgDraft),
		Confidential:    p.Sprintf(msgConfidential),
		printer:         p,
	}
}

// labelTag matches loc against the translated languages. Chinese locales
// written in Traditional script get the Traditional labels whatever their
// region.
func labelTag(loc string) language.Tag {
	if script.FamilyFor(loc) == script.FamilyTraditional {
		return language.TraditionalChinese
	}
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(loc), "_", "-"))
	if err != nil {
		return language.English
	}
	_, i, conf := labelMatcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return labelLanguages[i]
}
