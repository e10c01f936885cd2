// Command report_client exercises a running report service over gRPC.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/salesgrowth-service/internal/transport/grpc/report"
)

func main() {
	addr := flag.String("addr", "localhost:9090", "Report service address")
	product := flag.String("product", "", "Generate a report from this product file (relative to the server data root, or s3://)")
	brand := flag.String("brand", "", "Generate a report from this brand file (relative to the server data root, or s3://)")
	persist := flag.Bool("persist", false, "Store the generated report")
	get := flag.String("get", "", "Fetch a stored report by ID")
	limit := flag.Int("limit", 10, "Number of reports to list")
	flag.Parse()

	// Connect to gRPC server
	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := report.NewClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch {
	case *product != "" || *brand != "":
		req, err := structpb.NewStruct(map[string]interface{}{
			report.FieldProductURI: *product,
			report.FieldBrandURI:   *brand,
			report.FieldPersist:    *persist,
		})
		if err != nil {
			log.Fatalf("Invalid request: %v", err)
		}
		resp, err := client.GenerateReport(ctx, req)
		if err != nil {
			log.Fatalf("Failed to generate report: %v", err)
		}
		printReport(resp)

	case *get != "":
		req, _ := structpb.NewStruct(map[string]interface{}{report.FieldReportID: *get})
		resp, err := client.GetReport(ctx, req)
		if err != nil {
			log.Fatalf("Failed to get report: %v", err)
		}
		printReport(resp)

	default:
		req, _ := structpb.NewStruct(map[string]interface{}{report.FieldPageSize: *limit})
		resp, err := client.ListReports(ctx, req)
		if err != nil {
			log.Fatalf("Failed to list reports: %v", err)
		}

		fields := resp.GetFields()
		reports := fields["reports"].GetListValue().GetValues()
		fmt.Printf("Found %d reports (total: %d):\n\n", len(reports), int64(fields["total_count"].GetNumberValue()))
		for i, r := range reports {
			printSummary(i+1, r.GetStructValue())
		}
	}
}

func printSummary(n int, s *structpb.Struct) {
	f := s.GetFields()
	fmt.Printf("%d. %s\n", n, f[report.FieldReportID].GetStringValue())
	fmt.Printf("   Rows: %d product, %d brand\n", int64(f["product_rows"].GetNumberValue()), int64(f["brand_rows"].GetNumberValue()))
	fmt.Printf("   Weeks: %s to %s\n", f["first_week"].GetStringValue(), f["last_week"].GetStringValue())
	if generated, err := report.ParseTimestamp(f["generated_at"].GetStringValue()); err == nil {
		fmt.Printf("   Generated: %s\n", generated.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
}

func printReport(resp *structpb.Struct) {
	printSummary(1, resp)

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(resp.GetFields()["document"].GetStringValue()), "", "    "); err != nil {
		log.Fatalf("Invalid document: %v", err)
	}
	fmt.Println(out.String())
}
