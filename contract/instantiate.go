package contract

import (
	"context"

	"xdao.co/jumpring/dna"
	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage"
)

// Instantiate creates the singleton config. The sender becomes the owner and
// the budget starts at DefaultSwigs.
func Instantiate(ctx context.Context, deps Deps, info MessageInfo, msg InstantiateMsg) (Response, error) {
	if err := requireSender(info); err != nil {
		return Response{}, err
	}
	if err := dna.CheckParams(msg.DNALength, msg.DNAModulus); err != nil {
		return Response{}, err
	}

	_, err := deps.Storage.LoadConfig(ctx)
	switch {
	case err == nil:
		return Response{}, model.NewError(model.KindAlreadyInitialized, "contract is already instantiated")
	case !storage.IsNotFound(err):
		return Response{}, storageError("load config", err)
	}

	cfg := model.Config{
		Owner:      info.Sender,
		DNALength:  msg.DNALength,
		DNAModulus: msg.DNAModulus,
		Swigs:      DefaultSwigs,
	}
	if err := deps.Storage.SaveConfig(ctx, cfg); err != nil {
		return Response{}, storageError("save config", err)
	}
	return Response{}.
		addAttribute("action", "instantiate").
		addAttribute("owner", cfg.Owner.String()), nil
}
