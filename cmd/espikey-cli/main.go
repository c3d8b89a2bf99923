package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/imishinist/espikey/api/kvpb"
)

func main() {
	defaultAddr := os.Getenv("ESPIKEY_ADDR")
	if defaultAddr == "" {
		defaultAddr = "localhost:50051"
	}

	addr := flag.String("addr", defaultAddr, "Server address")
	b64Flag := flag.Bool("b64", false, "Treat key/value arguments as base64-encoded binary")
	hexFlag := flag.Bool("hex", false, "Print fetched values as a hex dump")
	flag.Usage = printUsage
	flag.Parse()
	b64, hex := *b64Flag, *hexFlag

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	conn, err := grpc.NewClient("passthrough:///"+*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := kvpb.NewKVServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	command := args[0]

	switch command {
	case "get":
		if len(args) < 2 {
			fmt.Println("Usage: espikey-cli get <key>")
			os.Exit(1)
		}
		handleGet(ctx, client, decodeArg(args[1], b64), hex)

	case "set":
		if len(args) < 3 {
			fmt.Println("Usage: espikey-cli set <key> <value>")
			os.Exit(1)
		}
		handleSet(ctx, client, decodeArg(args[1], b64), decodeArg(args[2], b64))

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// decodeArg turns a command-line argument into the raw bytes sent on the
// wire. Keys and values are binary; -b64 lets callers pass bytes the shell
// cannot.
func decodeArg(s string, b64 bool) []byte {
	if !b64 {
		return []byte(s)
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		log.Fatalf("Invalid base64 argument %q: %v", s, err)
	}
	return data
}

func handleGet(ctx context.Context, client kvpb.KVServiceClient, key []byte, hex bool) {
	resp, err := client.Get(ctx, &kvpb.GetRequest{Key: key})
	if err != nil {
		log.Fatalf("Get failed: %v", err)
	}

	switch resp.Status {
	case kvpb.Status_STATUS_OK:
		if hex {
			dump(resp.Value)
		} else {
			os.Stdout.Write(resp.Value)
			fmt.Println()
		}
	case kvpb.Status_STATUS_NOT_FOUND:
		fmt.Fprintln(os.Stderr, "Key not found")
		os.Exit(1)
	default:
		log.Fatalf("Get returned %v", resp.Status)
	}
}

func handleSet(ctx context.Context, client kvpb.KVServiceClient, key, value []byte) {
	resp, err := client.Set(ctx, &kvpb.SetRequest{Key: key, Value: value})
	if err != nil {
		log.Fatalf("Set failed: %v", err)
	}

	if resp.Status != kvpb.Status_STATUS_OK {
		log.Fatalf("Set returned %v", resp.Status)
	}
	fmt.Println("OK")
}

// dump prints hex bytes alongside a printable-ASCII rendering, one row per
// 16 bytes.
func dump(data []byte) {
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]

		fmt.Printf("%08x  ", off)
		for i := 0; i < 16; i++ {
			if i < len(chunk) {
				fmt.Printf("%02x ", chunk[i])
			} else {
				fmt.Print("   ")
			}
		}
		fmt.Print(" |")
		for _, b := range chunk {
			if b >= 0x20 && b < 0x7f {
				fmt.Printf("%c", b)
			} else {
				fmt.Print(".")
			}
		}
		fmt.Println("|")
	}
	if len(data) == 0 {
		fmt.Println("(empty)")
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  espikey-cli [-addr host:port] [-b64] [-hex] get <key>")
	fmt.Println("  espikey-cli [-addr host:port] [-b64] set <key> <value>")
	fmt.Println("")
	fmt.Println("Flags:")
	fmt.Println("  -addr  Server address (default: localhost:50051, or ESPIKEY_ADDR)")
	fmt.Println("  -b64   Treat key/value arguments as base64-encoded binary")
	fmt.Println("  -hex   Print fetched values as a hex dump")
}
