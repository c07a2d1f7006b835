package installer

import (
	"fmt"
)

// Torch wheel channels. The index URL decides whether pip resolves a CPU or
// CUDA build; everything else on PyPI is channel-agnostic.
const (
	ChannelCPU   = "cpu"
	ChannelCU118 = "cu118"
	ChannelCU121 = "cu121"
)

// torchIndexBase is the wheel index serving hardware-specific torch builds.
const torchIndexBase = "https://download.pytorch.org/whl/"

func validChannel(channel string) bool {
	switch channel {
	case ChannelCPU, ChannelCU118, ChannelCU121:
		return true
	}
	return false
}

// SplitTorch separates the torch requirement from the other specifiers.
// Torch needs its own index URL, so it must ride next to --extra-index-url
// instead of the plain list. Name matching is exact: torchvision and
// torchmetrics stay with the others.
func SplitTorch(reqs []string) (torch string, others []string) {
	for _, r := range reqs {
		if torch == "" && requirementName(r) == "torch" {
			torch = r
			continue
		}
		others = append(others, r)
	}
	return torch, others
}

// TorchInstallArgs returns the pip arguments that install torchReq from the
// channel's wheel index. Darwin has no hardware-specific wheels, so the
// requirement goes through bare there.
func TorchInstallArgs(torchReq, channel, goos string) ([]string, error) {
	if torchReq == "" {
		return nil, nil
	}
	if channel == "" {
		channel = ChannelCPU
	}
	if !validChannel(channel) {
		return nil, fmt.Errorf("unknown torch channel %q (want cpu, cu118 or cu121)", channel)
	}
	if goos == "darwin" {
		return []string{torchReq}, nil
	}
	return []string{"--extra-index-url", torchIndexBase + channel, torchReq}, nil
}

// InstallArgs assembles the final pip install argument list for option.
// Only full and core pull torch, so only those split it out; for every
// other option the specifiers pass through untouched.
func InstallArgs(option, channel, goos string) ([]string, error) {
	reqs, err := Assemble(option)
	if err != nil {
		return nil, err
	}
	if option != "" && option != OptionFull && option != "core" {
		return reqs, nil
	}
	torchReq, others := SplitTorch(reqs)
	torchArgs, err := TorchInstallArgs(torchReq, channel, goos)
	if err != nil {
		return nil, err
	}
	return append(others, torchArgs...), nil
}
