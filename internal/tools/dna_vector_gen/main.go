package main

import (
	"context"
	"encoding/json"
	"os"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/dna"
	"xdao.co/jumpring/model"
	"xdao.co/jumpring/state"
	"xdao.co/jumpring/storage/memory"
)

type dnaVector struct {
	Identity string `json:"identity"`
	Length   uint   `json:"length"`
	Modulus  uint8  `json:"modulus"`
	DNA      []int  `json:"dna"`
}

type rootVector struct {
	Senders []model.Identity `json:"senders"`
	Root    string           `json:"root"`
}

func derive(id string, length uint, modulus uint8) dnaVector {
	out, err := dna.Derive(id, length, modulus)
	if err != nil {
		panic(err)
	}
	ints := make([]int, len(out))
	for i, b := range out {
		ints[i] = int(b)
	}
	return dnaVector{Identity: id, Length: length, Modulus: modulus, DNA: ints}
}

// registrationRoot registers senders against a fresh contract and returns
// the resulting state root.
func registrationRoot(senders []model.Identity) string {
	ctx := context.Background()
	s := state.New(memory.New())
	run := func(fn func(contract.Deps) error) {
		txn := s.Begin()
		if err := fn(contract.Deps{Storage: txn}); err != nil {
			panic(err)
		}
		if err := txn.Commit(ctx); err != nil {
			panic(err)
		}
	}

	run(func(deps contract.Deps) error {
		_, err := contract.Instantiate(ctx, deps, contract.MessageInfo{Sender: "wasm1owner"}, contract.InstantiateMsg{DNALength: 8, DNAModulus: 10})
		return err
	})
	for _, sender := range senders {
		run(func(deps contract.Deps) error {
			_, err := contract.ImbibePotionHandler(ctx, deps, contract.Env{}, contract.MessageInfo{Sender: sender}, "Hugh",
				model.Species{Name: "Borg", SapienceLevel: model.SapienceHigh})
			return err
		})
	}

	root, err := s.Root(ctx)
	if err != nil {
		panic(err)
	}
	return root.String()
}

func main() {
	out := struct {
		DNA   []dnaVector  `json:"dna"`
		Roots []rootVector `json:"roots"`
	}{
		DNA: []dnaVector{
			derive("hello", 8, 10),
			derive("hello", 4, 255),
			derive("wasm1imbiber", 8, 10),
			derive("wasm1traveler", 8, 10),
			derive("", 32, 255),
		},
	}
	for _, senders := range [][]model.Identity{
		nil,
		{"wasm1a"},
		{"wasm1a", "wasm1b", "wasm1c"},
	} {
		out.Roots = append(out.Roots, rootVector{Senders: senders, Root: registrationRoot(senders)})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}
