package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	lx := New([]byte(src))
	var toks []Token
	for {
		tok, err := lx.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndWords(t *testing.T) {
	toks := scanAll(t, "(sequence (int 1) (bool true))")
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []Kind{
		KindLParen, KindWord, KindLParen, KindWord, KindWord, KindRParen,
		KindLParen, KindWord, KindWord, KindRParen, KindRParen, KindEOF,
	}, kinds)
	assert.Equal(t, "sequence", toks[1].Text)
}

func TestLexerSkipsLineAndBlockComments(t *testing.T) {
	toks := scanAll(t, "(int 1) ; trailing comment\n{block \"}\" comment} (bool false)")
	assert.Equal(t, KindLParen, toks[0].Kind)
	assert.Equal(t, "int", toks[1].Text)
	assert.Equal(t, "1", toks[2].Text)
	assert.Equal(t, KindRParen, toks[3].Kind)
	assert.Equal(t, KindLParen, toks[4].Kind)
	assert.Equal(t, "bool", toks[5].Text)
}

func TestLexerParamToken(t *testing.T) {
	toks := scanAll(t, "%0 %12")
	require.Len(t, toks, 3)
	assert.Equal(t, KindParam, toks[0].Kind)
	assert.Equal(t, 0, toks[0].Param)
	assert.Equal(t, 12, toks[1].Param)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := scanAll(t, `"a\nb\tc\x41B"`)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\tcAB", toks[0].Text)
}

func TestLexerStringSurrogatePair(t *testing.T) {
	toks := scanAll(t, "\"\\uD83D\\uDE00\"")
	require.Len(t, toks, 2)
	assert.Equal(t, "😀", toks[0].Text)
}

func TestLexerWideCodePointEscape(t *testing.T) {
	toks := scanAll(t, `"\U01F600"`)
	require.Len(t, toks, 2)
	assert.Equal(t, "😀", toks[0].Text)
}

func TestScanHexBlob(t *testing.T) {
	lx := New([]byte("01:02:03 rest"))
	b, err := lx.ScanHexBlob()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, b)
}

func TestScanHexBlobEmpty(t *testing.T) {
	lx := New([]byte(""))
	b, err := lx.ScanHexBlob()
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestScanHexBlobOddDigitsFails(t *testing.T) {
	lx := New([]byte("0"))
	_, err := lx.ScanHexBlob()
	assert.Error(t, err)
}
