package preapproval

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/holdings-one/holdings"
	"github.com/holdings-one/holdings/errors"
	"github.com/holdings-one/holdings/orm"
	"github.com/holdings-one/holdings/x/asset"
)

// PreApproval is the grantor's standing consent to become owner of a record
// matching the given snapshot. Asset.Owner is the expected payer; NewOwner
// the grantor.
type PreApproval struct {
	Asset    asset.Asset      `json:"asset"`
	NewOwner holdings.Address `json:"new_owner"`
}

var _ orm.Model = (*PreApproval)(nil)

func (p *PreApproval) Marshal() ([]byte, error) {
	return cbor.Marshal(p)
}

func (p *PreApproval) Unmarshal(raw []byte) error {
	return cbor.Unmarshal(raw, p)
}

// Validate ensures the pre-approval is well formed.
func (p *PreApproval) Validate() error {
	if err := p.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	if err := p.NewOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	return nil
}
