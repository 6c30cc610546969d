package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		ua   string
		want Client
	}{
		{"chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", ClientModern},
		{"firefox", "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", ClientModern},
		{"safari ios", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1", ClientModern},
		{"internet explorer 11", "Mozilla/5.0 (Windows NT 6.1; Trident/7.0; rv:11.0) like Gecko", ClientLegacy},
		{"internet explorer 8", "Mozilla/4.0 (compatible; MSIE 8.0; Windows NT 6.0)", ClientLegacy},
		{"opera mini", "Opera/9.80 (J2ME/MIDP; Opera Mini/9.80) Presto/2.12 Version/12.16", ClientLegacy},
		{"lynx", "Lynx/2.8.9rel.1 libwww-FM/2.14", ClientLegacy},
		{"googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", ClientBot},
		{"curl", "curl/8.4.0", ClientBot},
		{"empty", "", ClientBot},
		{"whitespace", "   ", ClientBot},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sniff(tc.ua))
		})
	}
}

func TestWantsFallback(t *testing.T) {
	assert.False(t, ClientModern.WantsFallback())
	assert.True(t, ClientLegacy.WantsFallback())
	assert.True(t, ClientBot.WantsFallback())
}
