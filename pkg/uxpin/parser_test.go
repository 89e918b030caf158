package uxpin

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shapestone/shape-uxpin/pkg/markup"
)

const (
	simpleCSV = "one, two, three"

	rawCSVData = `"one","two with escaped """" double quotes""","three, with, commas",four with no quotes,"five with CRLF` + "\r\n" + `"` + "\r\n" +
		`"2nd line one","two with escaped """" double quotes""","three, with, commas",four with no quotes,"five with CRLF` + "\r\n" + `"`

	iconData = `icon(CircleSuccess|green 600) "Done - 2,355 sec"`

	linkData1 = `link("Call me, maybe?"|tel:408-555-1212)`
	linkData2 = "link(UXPin | www.uxpin.com)"
	linkData3 = "link(UXPin | www.uxpin.com)\n" +
		"link(UXPin | www.uxpin.com)\n" +
		"link(UXPin | www.uxpin.com)"

	detailsListData = "link(Component_Name_A), icon(CircleCheckSolid|color-green-600) Ready, C-1, D-1, icon(Document|color-blue-600) icon(MoreVertical|color-blue-600)\n" +
		"link(Component_Name_B), icon(CircleWarningSolid|color-orange-500) Restarting..., C-2, D-2, icon(Document|color-blue-600) icon(MoreVertical|color-blue-600)\n" +
		"link(Component_Name_C), icon(CircleClearSolid|color-red-500) Unavailable, C-3, D-3, icon(Document|color-blue-600) icon(MoreVertical|color-blue-600)"

	choiceGroupData = "Apples\n" +
		"Bananas\n" +
		"\"I love you, Grapes!\"\n" +
		"Kiwis\n" +
		"Oranges"
)

func assertTokens(t *testing.T, want, got []markup.Token) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"blank", "   ", [][]string{}},
		{"simple", simpleCSV, [][]string{{"one", " two", " three"}}},
		{"icon with quoted text", iconData, [][]string{{"icon(CircleSuccess|green 600) Done - 2,355 sec"}}},
		{"link with quoted text", linkData1, [][]string{{"link(Call me, maybe?|tel:408-555-1212)"}}},
		{"link", linkData2, [][]string{{"link(UXPin | www.uxpin.com)"}}},
		{"three links", linkData3, [][]string{
			{"link(UXPin | www.uxpin.com)"},
			{"link(UXPin | www.uxpin.com)"},
			{"link(UXPin | www.uxpin.com)"},
		}},
		{"choice group", choiceGroupData, [][]string{
			{"Apples"}, {"Bananas"}, {"I love you, Grapes!"}, {"Kiwis"}, {"Oranges"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.input))
		})
	}
}

func TestSplit_RawCSV(t *testing.T) {
	row := []string{
		"one",
		`two with escaped "" double quotes"`,
		"three, with, commas",
		"four with no quotes",
		"five with CRLF\r\n",
	}
	second := append([]string{"2nd line one"}, row[1:]...)

	assert.Equal(t, [][]string{row, second}, Split(rawCSVData))
}

func TestSplitWithOptions(t *testing.T) {
	got := SplitWithOptions("link(a|b.com); C-1", Options{Comma: ';'})
	assert.Equal(t, [][]string{{"link(a|b.com)", " C-1"}}, got)
}

func TestSplitNode(t *testing.T) {
	node := SplitNode("a,b\nc")
	require.Equal(t, 2, node.Len())
	assert.Len(t, node.Elements(), 2)
}

func TestParse_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\r\n\t", ",,\n , "} {
		assert.Empty(t, Parse(input), "Parse(%q)", input)
	}
}

func TestParse_Text(t *testing.T) {
	assertTokens(t, []markup.Token{
		markup.Text{Order: 0, Text: "one"},
		markup.Text{Order: 1, Text: "two"},
		markup.Text{Order: 2, Text: "three"},
	}, Parse(simpleCSV))

	assertTokens(t, []markup.Token{
		markup.Text{Order: 0, Text: "one"},
		markup.Text{Order: 1, Text: `two with escaped "" double quotes"`},
		markup.Text{Order: 2, Text: "three, with, commas"},
		markup.Text{Order: 3, Text: "four with no quotes"},
		markup.Text{Order: 4, Text: "five with CRLF"},
		markup.Text{Order: 5, Text: "2nd line one"},
		markup.Text{Order: 6, Text: `two with escaped "" double quotes"`},
		markup.Text{Order: 7, Text: "three, with, commas"},
		markup.Text{Order: 8, Text: "four with no quotes"},
		markup.Text{Order: 9, Text: "five with CRLF"},
	}, Parse(rawCSVData))
}

func TestParse_Icon(t *testing.T) {
	assertTokens(t, []markup.Token{
		markup.Icon{Order: 0, IconName: "CircleSuccess", ColorToken: "green 600", Text: "Done - 2,355 sec"},
	}, Parse(iconData))

	assertTokens(t, []markup.Token{
		markup.Icon{Order: 0, IconName: "Globe", Color: "#0078d4", ColorToken: "#0078d4"},
	}, Parse("icon(Globe|#0078d4)"))
}

func TestParse_Link(t *testing.T) {
	assertTokens(t, []markup.Token{
		markup.Link{Order: 0, Text: "Call me, maybe?", Href: "tel:408-555-1212"},
	}, Parse(linkData1))

	assertTokens(t, []markup.Token{
		markup.Link{Order: 0, Text: "UXPin", Href: "http://www.uxpin.com"},
	}, Parse(linkData2))

	assertTokens(t, []markup.Token{
		markup.Link{Order: 0, Text: "UXPin", Href: "http://www.uxpin.com"},
		markup.Link{Order: 1, Text: "UXPin", Href: "http://www.uxpin.com"},
		markup.Link{Order: 2, Text: "UXPin", Href: "http://www.uxpin.com"},
	}, Parse(linkData3))

	assertTokens(t, []markup.Token{
		markup.Link{Order: 0, Text: "Visit UXPin", Href: "http://www.uxpin.com"},
	}, Parse("link(Visit UXPin|www.uxpin.com)"))
}

func TestParse_Compound(t *testing.T) {
	assertTokens(t, []markup.Token{
		markup.Compound{Order: 0, Value: []markup.Token{
			markup.Link{Order: 0, Text: "Tahlia", Href: "http://www.paypal.com"},
			markup.Text{Order: 1, Text: "ran a new system test."},
			markup.Icon{Order: 2, IconName: "Home", ColorToken: "orange"},
		}},
	}, Parse("link(Tahlia|http://www.paypal.com) ran a new system test. icon(Home|orange)"))
}

func TestParse_DetailsList(t *testing.T) {
	row := func(base int, name, icon, color, status, c, d string) []markup.Token {
		return []markup.Token{
			markup.Link{Order: base, Text: name},
			markup.Icon{Order: base + 1, IconName: icon, ColorToken: color, Text: status},
			markup.Text{Order: base + 2, Text: c},
			markup.Text{Order: base + 3, Text: d},
			markup.Compound{Order: base + 4, Value: []markup.Token{
				markup.Icon{Order: 0, IconName: "Document", ColorToken: "color-blue-600"},
				markup.Icon{Order: 1, IconName: "MoreVertical", ColorToken: "color-blue-600"},
			}},
		}
	}

	var want []markup.Token
	want = append(want, row(0, "Component_Name_A", "CircleCheckSolid", "color-green-600", "Ready", "C-1", "D-1")...)
	want = append(want, row(5, "Component_Name_B", "CircleWarningSolid", "color-orange-500", "Restarting...", "C-2", "D-2")...)
	want = append(want, row(10, "Component_Name_C", "CircleClearSolid", "color-red-500", "Unavailable", "C-3", "D-3")...)

	assertTokens(t, want, Parse(detailsListData))
}

func TestParse_ChoiceGroup(t *testing.T) {
	assertTokens(t, []markup.Token{
		markup.Text{Order: 0, Text: "Apples"},
		markup.Text{Order: 1, Text: "Bananas"},
		markup.Text{Order: 2, Text: "I love you, Grapes!"},
		markup.Text{Order: 3, Text: "Kiwis"},
		markup.Text{Order: 4, Text: "Oranges"},
	}, Parse(choiceGroupData))
}

func TestParse_CommaQuoting(t *testing.T) {
	assertTokens(t, []markup.Token{
		markup.Text{Order: 0, Text: "I love you"},
		markup.Text{Order: 1, Text: "Grapes!"},
	}, Parse("I love you, Grapes!"))

	assertTokens(t, []markup.Token{
		markup.Text{Order: 0, Text: "I love you, Grapes!"},
	}, Parse(`"I love you, Grapes!"`))
}

func TestParse_IdempotentTrimming(t *testing.T) {
	assertTokens(t, Parse("Apples and Grapes"), Parse(" Apples and Grapes "))
}

func TestParse_OrderIsGapFree(t *testing.T) {
	inputs := []string{simpleCSV, rawCSVData, iconData, linkData3, detailsListData, choiceGroupData, "a,,b\n\n , c"}
	for _, input := range inputs {
		for i, tok := range Parse(input) {
			assert.Equal(t, i, tok.Index(), "input %q token %d", input, i)
		}
	}
}

func TestParse_SingleElementNeverWraps(t *testing.T) {
	inputs := []string{iconData, linkData1, "icon(A) trailing", "plain text", "link(a|b)"}
	for _, input := range inputs {
		tokens := Parse(input)
		require.Len(t, tokens, 1, "input %q", input)
		assert.NotEqual(t, markup.TypeCompound, tokens[0].Type(), "input %q", input)
	}
}

func TestParse_CompoundInnerOrders(t *testing.T) {
	tokens := Parse("x, link(a) b icon(c) d link(e)")
	require.Len(t, tokens, 2)

	c, ok := tokens[1].(markup.Compound)
	require.True(t, ok, "expected Compound, got %T", tokens[1])
	assert.Equal(t, 1, c.Order)
	for i, el := range c.Value {
		assert.Equal(t, i, el.Index())
	}
}

func TestParseWithOptions(t *testing.T) {
	tokens := ParseWithOptions("link(Docs|docs.example.com); icon(A|#ABCDEF)", Options{Comma: ';', DefaultScheme: "https://"})
	assertTokens(t, []markup.Token{
		markup.Link{Order: 0, Text: "Docs", Href: "https://docs.example.com"},
		markup.Icon{Order: 1, IconName: "A", Color: "#ABCDEF", ColorToken: "#ABCDEF"},
	}, tokens)

	assertTokens(t, Parse(detailsListData), ParseWithOptions(detailsListData, Options{}))
}

func TestParseReader(t *testing.T) {
	tokens, err := ParseReader(strings.NewReader(choiceGroupData))
	require.NoError(t, err)
	assertTokens(t, Parse(choiceGroupData), tokens)
}

func TestParseReader_Error(t *testing.T) {
	readErr := errors.New("boom")
	_, err := ParseReader(iotest.ErrReader(readErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "UXPin", Format())
}
