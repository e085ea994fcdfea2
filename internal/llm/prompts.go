package llm

const systemPrompt = `You are an expert in writing Playwright Python test cases for web applications.`
