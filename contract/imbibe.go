package contract

import (
	"bytes"
	"context"
	"strconv"

	"xdao.co/jumpring/dna"
	"xdao.co/jumpring/model"
)

// ImbibePotionHandler registers the sender.
//
// The decremented budget and the new record are written before the authority
// notification is built. The notification only reports failure back, and a
// failed notification does not refund the swig.
func ImbibePotionHandler(ctx context.Context, deps Deps, env Env, info MessageInfo, name string, species model.Species) (Response, error) {
	if err := requireSender(info); err != nil {
		return Response{}, err
	}
	if !species.SapienceLevel.Valid() {
		return Response{}, model.NewError(model.KindInvalidRequest, "unknown sapience level "+species.SapienceLevel.String())
	}

	cfg, err := deps.Storage.LoadConfig(ctx)
	if err != nil {
		return Response{}, configError(err)
	}
	if cfg.Swigs == 0 {
		return Response{}, model.NewError(model.KindResourceExhausted, "out of swigs")
	}

	exists, err := deps.Storage.HasImbiber(ctx, info.Sender)
	if err != nil {
		return Response{}, storageError("check imbiber", err)
	}
	if exists {
		return Response{}, model.NewError(model.KindAlreadyRegistered, info.Sender.String()+" has already imbibed the potion")
	}

	cfg.Swigs--
	if err := deps.Storage.SaveConfig(ctx, cfg); err != nil {
		return Response{}, storageError("save config", err)
	}

	cyborgDNA, err := dna.Derive(info.Sender.String(), cfg.DNALength, cfg.DNAModulus)
	if err != nil {
		return Response{}, err
	}

	rec := model.Imbiber{
		Address:   info.Sender,
		Species:   species,
		Name:      name,
		CyborgDNA: cyborgDNA,
	}
	if err := deps.Storage.SaveImbiber(ctx, info.Sender, rec); err != nil {
		return Response{}, storageError("save imbiber", err)
	}

	notify := SubMsg{
		ID:      ReplyNotify,
		ReplyOn: ReplyOnError,
		Msg: WasmExecute{
			Contract: env.authority(),
			Msg: PortalExecuteMsg{Snitch: &Snitch{
				Address: info.Sender,
				Name:    name,
				Species: species,
			}},
		},
	}

	resp := Response{Messages: []SubMsg{notify}}
	return resp.
		addAttribute("action", "imbibe_potion").
		addAttribute("imbiber", info.Sender.String()).
		addAttribute("swigs_remaining", strconv.Itoa(int(cfg.Swigs))), nil
}

// VerifyImbiberDNA re-derives rec's DNA from its address under cfg.
func VerifyImbiberDNA(rec model.Imbiber, cfg model.Config) (bool, error) {
	want, err := dna.Derive(rec.Address.String(), cfg.DNALength, cfg.DNAModulus)
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, rec.CyborgDNA), nil
}
