package flow

import (
	"context"
	"strings"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
)

const profileBaseURL = "https://x.com/"

type RegistrationRequest struct {
	Name string
	// Handle is an X handle, with or without the leading @, or a full
	// profile URL.
	Handle      string
	Location    string
	PhoneNumber string
}

// ProfileURI turns a handle into the profile URL stored on the ledger.
func ProfileURI(handle string) string {
	h := strings.TrimSpace(handle)
	if strings.HasPrefix(h, "https://") || strings.HasPrefix(h, "http://") {
		return h
	}
	h = strings.TrimPrefix(h, "@")
	if h == "" {
		return ""
	}
	return profileBaseURL + h
}

func (r RegistrationRequest) normalize() (RegistrationRequest, error) {
	out := RegistrationRequest{
		Name:        strings.TrimSpace(r.Name),
		Handle:      ProfileURI(r.Handle),
		Location:    strings.TrimSpace(r.Location),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
	}
	switch {
	case out.Name == "":
		return out, invalid("Missing name", "a seller name is required")
	case out.Handle == "":
		return out, invalid("Missing profile", "an X handle is required")
	case out.Location == "":
		return out, invalid("Missing location", "a location is required")
	case out.PhoneNumber == "":
		return out, invalid("Missing phone number", "a phone number is required")
	}
	return out, nil
}

// Register registers the session address as a seller. An address that is
// already registered is rejected without submitting anything.
func (f *Flows) Register(ctx context.Context, req RegistrationRequest) error {
	key := func(s *wallet.Session) string { return "register/" + s.Address.Hex() }

	err := f.run(ctx, KindRegister, key, func(ctx context.Context, op *Op) (string, error) {
		req, err := req.normalize()
		if err != nil {
			return "", err
		}

		if cur := f.market.Sellers.Current(); cur != nil && cur.Address == op.Session.Address {
			return "", invalid("Already registered", "this address is registered as "+cur.Name)
		}
		existing, err := f.market.Sellers.Lookup(ctx, op.Session.Address)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", invalid("Already registered", "this address is registered as "+existing.Name)
		}

		if _, err := f.gw.Write(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodRegisterSeller,
			Args:     []interface{}{req.Name, req.Handle, req.Location, req.PhoneNumber},
			Session:  op.Session,
			Label:    "Register seller",
		}); err != nil {
			return "", err
		}
		return "Registered as a seller", nil
	})
	if err != nil {
		return err
	}

	f.refresh(ctx, string(KindRegister), func(ctx context.Context) error {
		_, err := f.market.Sellers.RefreshSelf(ctx)
		return err
	})
	return nil
}
