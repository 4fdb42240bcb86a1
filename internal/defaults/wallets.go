package defaults

import (
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/wallet"
)

const (
	PhantomName  = "Phantom"
	SolflareName = "Solflare"
)

const (
	phantomIcon  = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSIxMDgiIGhlaWdodD0iMTA4IiB2aWV3Qm94PSIwIDAgMTA4IDEwOCIgZmlsbD0ibm9uZSI+PHJlY3Qgd2lkdGg9IjEwOCIgaGVpZ2h0PSIxMDgiIHJ4PSIyNiIgZmlsbD0iI0FCOUZGMiIvPjxwYXRoIGQ9Ik00Ni41IDcwLjJjLTQuMyA2LjYtMTEuNSAxNC45LTIxLjEgMTQuOS00LjUgMC04LjktMS45LTguOS05LjkgMC0yMC41IDI3LjktNTIuMSA1My44LTUyLjEgMTQuNyAwIDIwLjYgMTAuMiAyMC42IDIxLjggMCAxNC45LTkuNyAzMS45LTE4LjYgMzEuOS0yLjggMC00LjItMS41LTQuMi00IDAtLjcuMS0xLjQuNC0yLjEtMyA1LjItOC45IDEwLTE0LjQgMTAtNCAwLTYtMi41LTYtNiAwLTEuMy4zLTIuNy44LTQuMXoiIGZpbGw9IiNGRkZERjgiLz48L3N2Zz4="
	solflareIcon = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSI1MCIgaGVpZ2h0PSI1MCIgdmlld0JveD0iMCAwIDUwIDUwIj48cmVjdCB3aWR0aD0iNTAiIGhlaWdodD0iNTAiIHJ4PSIxMiIgZmlsbD0iI0ZGRUY0NiIvPjxwYXRoIGQ9Ik0xMiAzMGM4LTIgMTQgNCAyNi0zLTYgOS0xOSAxMi0yNiAzem0yNi0xMGMtOCAyLTE0LTQtMjYgMyA2LTkgMTktMTIgMjYtM3oiIGZpbGw9IiMwMjA1MEEiLz48L3N2Zz4="
)

// Phantom returns the bundled Phantom adapter
func Phantom(p Provider) *InjectedAdapter {
	return NewInjectedAdapter(wallet.Info{
		Name: PhantomName,
		URL:  "https://phantom.app",
		Icon: phantomIcon,
	}, p)
}

// Solflare returns the bundled Solflare adapter
func Solflare(p Provider) *InjectedAdapter {
	return NewInjectedAdapter(wallet.Info{
		Name: SolflareName,
		URL:  "https://solflare.com",
		Icon: solflareIcon,
	}, p)
}

// Adapters returns the bundled defaults in priority order.
// Providers are looked up by wallet name; missing ones leave the wallet NotDetected.
func Adapters(providers map[string]Provider) []wallet.Adapter {
	return []wallet.Adapter{
		Phantom(providers[PhantomName]),
		Solflare(providers[SolflareName]),
	}
}
