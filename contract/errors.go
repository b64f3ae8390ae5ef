package contract

import (
	"fmt"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage"
)

func storageError(what string, err error) error {
	return model.WrapError(model.KindStorage, what, err)
}

// configError maps a missing config to NotInitialized.
func configError(err error) error {
	if storage.IsNotFound(err) {
		return model.NewError(model.KindNotInitialized, "contract is not instantiated")
	}
	return storageError("load config", err)
}

func requireSender(info MessageInfo) error {
	if info.Sender.Empty() {
		return model.NewError(model.KindInvalidRequest, "sender identity is required")
	}
	return nil
}

func notRegistered(id model.Identity, cause error) error {
	return model.WrapError(model.KindNotRegistered, fmt.Sprintf("%s has not imbibed the potion", id), cause)
}
