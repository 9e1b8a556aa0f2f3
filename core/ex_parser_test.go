package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEx(t *testing.T) {
	tests := []struct {
		line string
		want ExCommand
	}{
		{
			line: "1,3s/^abc/cde/",
			want: ExCommand{
				Range:       Range{Addrs: []Address{{Kind: AddrNumber, Line: 1}, {Kind: AddrNumber, Line: 3}}},
				Name:        "s",
				Pattern:     "^abc",
				Replacement: "cde",
			},
		},
		{
			line: "%s/a\\/b/c/g",
			want: ExCommand{
				Range:       Range{Addrs: []Address{{Kind: AddrNumber, Line: 1}, {Kind: AddrLast}}},
				Name:        "s",
				Pattern:     "a/b",
				Replacement: "c",
				Global:      true,
			},
		},
		{
			line: "1m5",
			want: ExCommand{
				Range: Range{Addrs: []Address{{Kind: AddrNumber, Line: 1}}},
				Name:  "m",
				Dest:  &Address{Kind: AddrNumber, Line: 5},
			},
		},
		{
			line: "3,1co$",
			want: ExCommand{
				Range: Range{Addrs: []Address{{Kind: AddrNumber, Line: 3}, {Kind: AddrNumber, Line: 1}}},
				Name:  "co",
				Dest:  &Address{Kind: AddrLast},
			},
		},
		{
			line: "t0",
			want: ExCommand{Name: "t", Dest: &Address{Kind: AddrNumber}},
		},
		{
			line: ".,.+2d",
			want: ExCommand{
				Range: Range{Addrs: []Address{{Kind: AddrCurrent}, {Kind: AddrCurrent, Offset: 2}}},
				Name:  "d",
			},
		},
		{
			line: "/foo/-1,$p",
			want: ExCommand{
				Range: Range{Addrs: []Address{{Kind: AddrSearchForward, Pattern: "foo", Offset: -1}, {Kind: AddrLast}}},
				Name:  "p",
			},
		},
		{
			line: "g/foo/d",
			want: ExCommand{Name: "g", Pattern: "foo", Sub: "d"},
		},
		{
			line: "g!/foo/p",
			want: ExCommand{Name: "v", Pattern: "foo", Sub: "p"},
		},
		{
			line: "5",
			want: ExCommand{Range: Range{Addrs: []Address{{Kind: AddrNumber, Line: 5}}}},
		},
		{
			line: "w out.txt",
			want: ExCommand{Name: "w", Arg: "out.txt"},
		},
		{
			line: "q!",
			want: ExCommand{Name: "q", Bang: true},
		},
		{
			line: "se ts=4 nu",
			want: ExCommand{Name: "set", Arg: "ts=4 nu"},
		},
		{
			line: "red",
			want: ExCommand{Name: "red"},
		},
		{
			line: "=",
			want: ExCommand{Name: "="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseEx(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExErrors(t *testing.T) {
	for _, line := range []string{"frob", "c", "s/a/b/x", "m", "1,2d junk", "g"} {
		t.Run(line, func(t *testing.T) {
			_, err := ParseEx(line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCommand)
		})
	}
}

func TestCompleteExName(t *testing.T) {
	assert.Equal(t, "substitute", CompleteExName("su"))
	assert.Equal(t, "global", CompleteExName("gl"))
	assert.Equal(t, "", CompleteExName("zz"))
	assert.Equal(t, "", CompleteExName(""))

	assert.Equal(t, "1,$delete", completeCommand("1,$del"))
	assert.Equal(t, "s/a/b", completeCommand("s/a/b"))
}

func TestAddressOffsetSaturates(t *testing.T) {
	cmd, err := ParseEx("1+9223372036854775807+9223372036854775807p")
	require.NoError(t, err)
	require.Len(t, cmd.Range.Addrs, 1)
	assert.Equal(t, math.MaxInt, cmd.Range.Addrs[0].Offset)

	cmd, err = ParseEx("$-9223372036854775807-9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, math.MinInt, cmd.Range.Addrs[0].Offset)
}
