// Package budget resolves an ExplorationBudget's effective skip-pattern
// list by merging caller configuration with a built-in, multi-language
// safety list (spec §3: "merged with a built-in safety list for
// destructive, network, purchase, and ad terms in several languages").
package budget

import (
	"strings"

	"github.com/corvid-labs/skillwalk/pkg/model"
)

// safetyList covers destructive, network, purchase, and advertising terms
// in English, Spanish, French, and German.
var safetyList = []string{
	// destructive
	"delete", "supprimer", "eliminar", "löschen", "erase", "factory reset",
	"wipe", "uninstall", "désinstaller", "remove account", "delete account",
	"sign out", "log out", "déconnexion", "cerrar sesión", "abmelden",
	// network / connectivity changing
	"airplane mode", "mode avion", "modo avión", "flugmodus",
	"forget network", "forget this network",
	// purchase
	"buy now", "acheter", "comprar", "kaufen", "subscribe", "s'abonner",
	"suscribirse", "abonnieren", "upgrade to pro", "restore purchase",
	"confirm purchase", "place order", "checkout",
	// advertising
	"sponsored", "advertisement", "publicité", "anuncio", "werbung",
	"watch ad", "no thanks, continue", "skip ad",
}

// Resolve returns b.SkipPatterns merged with the built-in safety list,
// lowercased, with duplicates removed.
func Resolve(b model.ExplorationBudget) []string {
	seen := make(map[string]struct{}, len(safetyList)+len(b.SkipPatterns))
	out := make([]string, 0, len(safetyList)+len(b.SkipPatterns))
	add := func(p string) {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range safetyList {
		add(p)
	}
	for _, p := range b.SkipPatterns {
		add(p)
	}
	return out
}

// ShouldSkip reports whether text matches any resolved skip pattern
// (substring, case-insensitive) — the default/shared notion of
// "unreachable target" used when a strategy's own shouldSkip defers to it.
func ShouldSkip(text string, patterns []string) bool {
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
