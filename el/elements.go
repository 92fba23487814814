package el

// Content sectioning elements

func Header(args ...any) *Element  { return createElement("header", args) }
func Footer(args ...any) *Element  { return createElement("footer", args) }
func Main(args ...any) *Element    { return createElement("main", args) }
func Nav(args ...any) *Element     { return createElement("nav", args) }
func Section(args ...any) *Element { return createElement("section", args) }
func Article(args ...any) *Element { return createElement("article", args) }
func Aside(args ...any) *Element   { return createElement("aside", args) }
func H1(args ...any) *Element      { return createElement("h1", args) }
func H2(args ...any) *Element      { return createElement("h2", args) }
func H3(args ...any) *Element      { return createElement("h3", args) }
func H4(args ...any) *Element      { return createElement("h4", args) }

// Text content elements

func Div(args ...any) *Element        { return createElement("div", args) }
func P(args ...any) *Element          { return createElement("p", args) }
func Span(args ...any) *Element       { return createElement("span", args) }
func Pre(args ...any) *Element        { return createElement("pre", args) }
func Blockquote(args ...any) *Element { return createElement("blockquote", args) }
func Ul(args ...any) *Element         { return createElement("ul", args) }
func Ol(args ...any) *Element         { return createElement("ol", args) }
func Li(args ...any) *Element         { return createElement("li", args) }
func Hr(args ...any) *Element         { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *Element      { return createElement("a", args) }
func Strong(args ...any) *Element { return createElement("strong", args) }
func Em(args ...any) *Element     { return createElement("em", args) }
func B(args ...any) *Element      { return createElement("b", args) }
func I(args ...any) *Element      { return createElement("i", args) }
func Small(args ...any) *Element  { return createElement("small", args) }
func Code(args ...any) *Element   { return createElement("code", args) }
func Br(args ...any) *Element     { return createElement("br", args) }

// Forms

func Form(args ...any) *Element     { return createElement("form", args) }
func Label(args ...any) *Element    { return createElement("label", args) }
func Input(args ...any) *Element    { return createElement("input", args) }
func Button(args ...any) *Element   { return createElement("button", args) }
func Select(args ...any) *Element   { return createElement("select", args) }
func Option(args ...any) *Element   { return createElement("option", args) }
func Textarea(args ...any) *Element { return createElement("textarea", args) }

// Tables

func Table(args ...any) *Element { return createElement("table", args) }
func Thead(args ...any) *Element { return createElement("thead", args) }
func Tbody(args ...any) *Element { return createElement("tbody", args) }
func Tr(args ...any) *Element    { return createElement("tr", args) }
func Th(args ...any) *Element    { return createElement("th", args) }
func Td(args ...any) *Element    { return createElement("td", args) }

// Embedded content

func Img(args ...any) *Element { return createElement("img", args) }
